// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultMode is stored for runs submitted without a mode.
const DefaultMode = "pairs"

// Run outcomes.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection for run persistence.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Run represents a single finished run.
type Run struct {
	ID        string
	Player    string
	Mode      string
	Turns     int
	Time      string // Clock display at the end of the run
	Seconds   int    // Elapsed seconds
	Outcome   string // "won" or "lost"
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; SSH sessions and HTTP handlers share this handle
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			mode TEXT NOT NULL,
			turns INTEGER NOT NULL,
			time_display TEXT NOT NULL,
			seconds INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_rank ON runs(mode, outcome, turns, seconds);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. A missing ID, mode or timestamp is filled in.
// Returns the ID of the stored run.
func (s *Store) SaveRun(ctx context.Context, r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Mode == "" {
		r.Mode = DefaultMode
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Outcome != OutcomeLost {
		r.Outcome = OutcomeWon
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, player, mode, turns, time_display, seconds, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Mode, r.Turns, r.Time, r.Seconds, r.Outcome,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.ID, nil
}

const runColumns = `id, player, mode, turns, time_display, seconds, outcome, created_at`

// rankOrder puts finished boards first, then fewer turns, then faster runs.
const rankOrder = `ORDER BY (outcome = 'lost') ASC, turns ASC, seconds ASC, created_at ASC, rowid ASC`

// TopRuns retrieves the best runs for the given mode, or for all modes
// when mode is empty.
func (s *Store) TopRuns(ctx context.Context, mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	var (
		rows *sql.Rows
		err  error
	)
	if mode == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+runColumns+` FROM runs `+rankOrder+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+runColumns+` FROM runs WHERE mode = ? `+rankOrder+` LIMIT ?`, mode, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// PlayerRuns retrieves the most recent runs of one player.
func (s *Store) PlayerRuns(ctx context.Context, player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE player = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player runs: %w", err)
	}
	return scanRuns(rows)
}

// ClearRuns deletes all runs for the given mode, or every run when mode is empty.
func (s *Store) ClearRuns(ctx context.Context, mode string) error {
	var err error
	if mode == "" {
		_, err = s.db.ExecContext(ctx, "DELETE FROM runs")
	} else {
		_, err = s.db.ExecContext(ctx, "DELETE FROM runs WHERE mode = ?", mode)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Mode, &r.Turns, &r.Time, &r.Seconds, &r.Outcome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}

// Stats contains aggregated statistics for a mode.
type Stats struct {
	Mode        string
	Runs        int
	Wins        int
	Losses      int
	BestTurns   int // Fewest turns in a won run, 0 without wins
	BestSeconds int // Fastest won run, 0 without wins
	AvgTurns    float64
	LastPlayed  time.Time
}

const statsColumns = `COUNT(*),
	COALESCE(SUM(outcome = 'won'), 0),
	COALESCE(MIN(CASE WHEN outcome = 'won' THEN turns END), 0),
	COALESCE(MIN(CASE WHEN outcome = 'won' THEN seconds END), 0),
	COALESCE(AVG(turns), 0),
	MAX(created_at)`

// Stats retrieves aggregated statistics for a specific mode.
func (s *Store) Stats(ctx context.Context, mode string) (*Stats, error) {
	stats := &Stats{Mode: mode}
	var lastPlayed any

	err := s.db.QueryRowContext(ctx,
		`SELECT `+statsColumns+` FROM runs WHERE mode = ?`, mode,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestTurns, &stats.BestSeconds, &stats.AvgTurns, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.Losses = stats.Runs - stats.Wins
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every mode that has been played.
func (s *Store) AllStats(ctx context.Context) (map[string]*Stats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT mode, `+statsColumns+` FROM runs GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*Stats)
	for rows.Next() {
		var st Stats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Runs, &st.Wins, &st.BestTurns, &st.BestSeconds, &st.AvgTurns, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Losses = st.Runs - st.Wins
		st.LastPlayed = parseTime(lastPlayed)
		all[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return all, nil
}
