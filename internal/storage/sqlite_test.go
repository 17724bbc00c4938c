package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRunFillsDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.SaveRun(ctx, Run{Player: "ann", Turns: 4, Time: "00:42", Seconds: 42})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a UUID, got %q", id)
	}

	runs, err := store.TopRuns(ctx, "", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}

	r := runs[0]
	if r.ID != id || r.Mode != DefaultMode || r.Outcome != OutcomeWon {
		t.Errorf("unexpected run %+v", r)
	}
	if time.Since(r.CreatedAt) > time.Minute {
		t.Errorf("CreatedAt not set: %v", r.CreatedAt)
	}
}

func TestTopRunsRanking(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	runs := []Run{
		{Player: "lost-fast", Turns: 0, Seconds: 5, Outcome: OutcomeLost},
		{Player: "slow", Turns: 3, Seconds: 90, Outcome: OutcomeWon},
		{Player: "fast", Turns: 3, Seconds: 30, Outcome: OutcomeWon},
		{Player: "few-turns", Turns: 1, Seconds: 200, Outcome: OutcomeWon},
		{Player: "fast-later", Turns: 3, Seconds: 30, Outcome: OutcomeWon},
	}
	for i, r := range runs {
		r.Time = "00:00"
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(ctx, "", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	want := []string{"few-turns", "fast", "fast-later", "slow", "lost-fast"}
	if len(top) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(top))
	}
	for i, name := range want {
		if top[i].Player != name {
			t.Errorf("rank %d: expected %s, got %s", i+1, name, top[i].Player)
		}
	}

	limited, err := store.TopRuns(ctx, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(limited))
	}
}

func TestTopRunsByMode(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveRun(ctx, Run{Player: "a", Mode: "pairs", Time: "00:10"})
	store.SaveRun(ctx, Run{Player: "b", Mode: "pairs_timed", Time: "00:10"})
	store.SaveRun(ctx, Run{Player: "c", Mode: "pairs_timed", Time: "00:10"})

	timed, err := store.TopRuns(ctx, "pairs_timed", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(timed) != 2 {
		t.Errorf("expected 2 timed runs, got %d", len(timed))
	}
	for _, r := range timed {
		if r.Mode != "pairs_timed" {
			t.Errorf("wrong mode in results: %s", r.Mode)
		}
	}
}

func TestPlayerRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, turns := range []int{5, 7, 2} {
		store.SaveRun(ctx, Run{Player: "ann", Turns: turns, Time: "00:10", CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	store.SaveRun(ctx, Run{Player: "bo", Turns: 1, Time: "00:10"})

	runs, err := store.PlayerRuns(ctx, "ann", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Turns != 2 {
		t.Errorf("expected most recent run first, got turns=%d", runs[0].Turns)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveRun(ctx, Run{Player: "a", Turns: 6, Seconds: 80, Time: "01:20", Outcome: OutcomeWon})
	store.SaveRun(ctx, Run{Player: "b", Turns: 4, Seconds: 95, Time: "01:35", Outcome: OutcomeWon})
	store.SaveRun(ctx, Run{Player: "c", Turns: 25, Seconds: 40, Time: "00:40", Outcome: OutcomeLost})

	st, err := store.Stats(ctx, DefaultMode)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 3 || st.Wins != 2 || st.Losses != 1 {
		t.Errorf("unexpected counts %+v", st)
	}
	if st.BestTurns != 4 {
		t.Errorf("expected best turns 4, got %d", st.BestTurns)
	}
	if st.BestSeconds != 80 {
		t.Errorf("expected best seconds 80, got %d", st.BestSeconds)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.Stats(ctx, "nothing")
	if err != nil {
		t.Fatal(err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	all, err := store.AllStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[DefaultMode] == nil {
		t.Errorf("expected stats for one mode, got %v", all)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveRun(ctx, Run{Player: "a", Mode: "pairs", Time: "00:10"})
	store.SaveRun(ctx, Run{Player: "b", Mode: "pairs_timed", Time: "00:10"})

	if err := store.ClearRuns(ctx, "pairs"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.TopRuns(ctx, "", 10)
	if len(runs) != 1 || runs[0].Mode != "pairs_timed" {
		t.Errorf("expected only the timed run left, got %+v", runs)
	}

	if err := store.ClearRuns(ctx, ""); err != nil {
		t.Fatal(err)
	}
	runs, _ = store.TopRuns(ctx, "", 10)
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	store.SaveRun(ctx, Run{Player: "ann", Time: "00:10"})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.TopRuns(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Player != "ann" {
		t.Errorf("run not persisted: %+v", runs)
	}
}
