package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/games/pairs"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

func TestScoreboardShowsRunsPerMode(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	runs := []storage.Run{
		{Player: "ann", Mode: pairs.IDClassic, Turns: 3, Time: "00:45", Seconds: 45},
		{Player: "bob", Mode: pairs.IDClassic, Turns: 25, Time: "01:30", Seconds: 90, Outcome: storage.OutcomeLost},
		{Player: "cid", Mode: pairs.IDTimed, Turns: 1, Time: "01:20", Seconds: 40},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	view := m.View()
	for _, want := range []string{"ann", "bob", "Runs: 2", "Wins: 1", "Best: 3 turns, 00:45"} {
		if !strings.Contains(view, want) {
			t.Errorf("classic view missing %q", want)
		}
	}
	if strings.Contains(view, "cid") {
		t.Error("classic view shows a timed run")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if view := m.View(); !strings.Contains(view, "cid") || strings.Contains(view, "bob") {
		t.Errorf("timed view shows the wrong runs:\n%s", view)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("expected the empty message")
	}

	next, _ := m.Update(runes("b"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("b did not go back")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)

	next, cmd := m.Update(runes("q"))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q did not quit")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}
}
