package storage

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-pairs/internal/leaderboard"
)

// Board serves the local runs table as a leaderboard.
type Board struct {
	store *Store
	mode  string
}

// Board returns a leaderboard view over one mode, or over every mode when
// mode is empty.
func (s *Store) Board(mode string) *Board {
	return &Board{store: s, mode: mode}
}

var _ leaderboard.Board = (*Board)(nil)

// Submit stores a record as a run.
func (b *Board) Submit(ctx context.Context, rec leaderboard.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	mode := rec.Mode
	if mode == "" {
		mode = b.mode
	}
	outcome := OutcomeWon
	if rec.Lost() {
		outcome = OutcomeLost
	}

	_, err := b.store.SaveRun(ctx, Run{
		Player:  rec.Name,
		Mode:    mode,
		Turns:   rec.Turns,
		Time:    rec.Time,
		Seconds: rec.ElapsedSeconds(),
		Outcome: outcome,
	})
	return err
}

// Top returns the n best runs as leaderboard entries.
func (b *Board) Top(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	runs, err := b.store.TopRuns(ctx, b.mode, n)
	if err != nil {
		return nil, fmt.Errorf("storage: leaderboard: %w", err)
	}

	entries := make([]leaderboard.Entry, len(runs))
	for i, r := range runs {
		entries[i] = leaderboard.Entry{Name: r.Player, Turns: r.Turns, Time: r.Time}
	}
	return entries, nil
}
