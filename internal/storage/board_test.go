package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/leaderboard"
)

func TestBoardSubmitAndTop(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	board := store.Board("pairs")

	records := []leaderboard.Record{
		{Name: "ann", Turns: 6, Time: "01:10"},
		{Name: "bo", Turns: 2, Time: "00:50", Result: leaderboard.ResultWon},
		{Name: "cy", Turns: 25, Time: "00:30", Result: leaderboard.ResultLost},
	}
	for _, rec := range records {
		if err := board.Submit(ctx, rec); err != nil {
			t.Fatalf("Submit(%+v) failed: %v", rec, err)
		}
	}

	top, err := board.Top(ctx, 5)
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}

	want := []leaderboard.Entry{
		{Name: "bo", Turns: 2, Time: "00:50"},
		{Name: "ann", Turns: 6, Time: "01:10"},
		{Name: "cy", Turns: 25, Time: "00:30"},
	}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], top[i])
		}
	}
}

func TestBoardUsesElapsedSeconds(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	board := store.Board("")

	// Countdown runs show remaining time; ranking must use elapsed seconds
	board.Submit(ctx, leaderboard.Record{Name: "slow", Turns: 3, Time: "01:40", Seconds: 20, Mode: "pairs_timed"})
	board.Submit(ctx, leaderboard.Record{Name: "quick", Turns: 3, Time: "01:50", Seconds: 10, Mode: "pairs_timed"})

	top, err := board.Top(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Name != "quick" {
		t.Errorf("expected quick first, got %+v", top)
	}

	runs, _ := store.TopRuns(ctx, "pairs_timed", 5)
	if len(runs) != 2 {
		t.Errorf("record mode not stored: %+v", runs)
	}
}

func TestBoardRejectsInvalidRecord(t *testing.T) {
	store := openTestStore(t)
	err := store.Board("").Submit(context.Background(), leaderboard.Record{Name: " ", Time: "soon"})
	if !errors.Is(err, leaderboard.ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}
