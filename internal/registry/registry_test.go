package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Result() (core.RunResult, bool) { return core.RunResult{}, false }

func register(t *testing.T, id string) {
	t.Helper()
	Register(id, "stub "+id, func() Game { return &stubGame{id: id} })
	t.Cleanup(func() {
		mu.Lock()
		delete(entries, id)
		mu.Unlock()
	})
}

func TestRegisterAndCreate(t *testing.T) {
	register(t, "zz_stub")

	if !Exists("zz_stub") {
		t.Fatal("registered game not found")
	}
	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("Create returned %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("expected error for unknown game")
	}
}

func TestListSortedWithMetadata(t *testing.T) {
	register(t, "zz_b")
	register(t, "zz_a")

	var got []GameInfo
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "zz_") {
			got = append(got, info)
		}
	}
	if len(got) != 2 || got[0].ID != "zz_a" || got[1].ID != "zz_b" {
		t.Fatalf("unexpected list %+v", got)
	}
	if got[0].Title != "ZZ_A" || got[0].Description != "stub zz_a" {
		t.Errorf("metadata not stored: %+v", got[0])
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, "zz_dup")

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	Register("zz_dup", "", func() Game { return &stubGame{id: "zz_dup"} })
}
