// Package leaderboard talks to the shared score board: a tiny JSON-over-HTTP
// protocol where clients POST finished runs and GET a ranked list of rows.
// It holds the client, the server and the types both sides share.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// Result values carried by a Record.
const (
	ResultWon  = "won"
	ResultLost = "lost"
)

// Record is one submitted run.
type Record struct {
	Name    string `json:"name"`
	Turns   int    `json:"turns"`
	Time    string `json:"time"`              // mm:ss as shown at the end of the run
	Result  string `json:"result,omitempty"`  // "won" or "lost"; empty counts as won
	Mode    string `json:"mode,omitempty"`    // Game mode ID
	Seconds int    `json:"seconds,omitempty"` // Elapsed seconds, used for ranking when set
}

// Entry is one ranked row.
type Entry struct {
	Name  string
	Turns int
	Time  string
}

// Board is anything that accepts runs and returns a ranked list.
type Board interface {
	// Submit stores one finished run.
	Submit(ctx context.Context, rec Record) error
	// Top returns at most n ranked entries.
	Top(ctx context.Context, n int) ([]Entry, error)
}

// Errors returned by boards.
var (
	ErrInvalidRecord     = errors.New("leaderboard: invalid record")
	ErrMalformedResponse = errors.New("leaderboard: malformed response")
	ErrRejected          = errors.New("leaderboard: submission rejected")
)

// FromRun converts a finished run into a Record.
func FromRun(r core.RunResult) Record {
	return Record{
		Name:    r.Player,
		Turns:   r.Turns,
		Time:    r.Time,
		Result:  r.Outcome(),
		Mode:    r.Mode,
		Seconds: r.Seconds,
	}
}

// ElapsedSeconds returns Seconds when set, otherwise the parsed Time.
func (r Record) ElapsedSeconds() int {
	if r.Seconds > 0 {
		return r.Seconds
	}
	secs, _ := ParseClock(r.Time)
	return secs
}

// Lost reports whether the record is a lost run.
func (r Record) Lost() bool {
	return r.Result == ResultLost
}

// Validate checks the fields a board needs to rank the record.
func (r Record) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if r.Turns < 0 {
		errs = append(errs, fmt.Errorf("turns is negative: %d", r.Turns))
	}
	if r.Seconds < 0 {
		errs = append(errs, fmt.Errorf("seconds is negative: %d", r.Seconds))
	}
	if _, err := ParseClock(r.Time); err != nil {
		errs = append(errs, err)
	}
	switch r.Result {
	case "", ResultWon, ResultLost:
	default:
		errs = append(errs, fmt.Errorf("unknown result %q", r.Result))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}

// ParseClock converts mm:ss to seconds. Minutes may exceed 59.
func ParseClock(s string) (int, error) {
	mm, ss, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("time %q is not mm:ss", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 {
		return 0, fmt.Errorf("time %q has bad minutes", s)
	}
	sec, err := strconv.Atoi(ss)
	if err != nil || sec < 0 || sec > 59 || len(ss) != 2 {
		return 0, fmt.Errorf("time %q has bad seconds", s)
	}
	return m*60 + sec, nil
}
