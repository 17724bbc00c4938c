package pairs

import (
	"fmt"
	"time"
)

// ClockMode selects how the run clock is shown and whether it can run out.
type ClockMode int

const (
	ClockUp   ClockMode = iota // elapsed time, no cap
	ClockDown                  // remaining time, loss at zero
)

// String returns the config name of the mode.
func (m ClockMode) String() string {
	if m == ClockDown {
		return "down"
	}
	return "up"
}

// ParseClockMode maps "up"/"down" to a ClockMode.
func ParseClockMode(s string) (ClockMode, error) {
	switch s {
	case "up", "":
		return ClockUp, nil
	case "down":
		return ClockDown, nil
	default:
		return ClockUp, fmt.Errorf("pairs: unknown clock mode %q", s)
	}
}

// Budget holds the two limits that can end a run in a loss.
type Budget struct {
	TurnLimit int           // Mismatches allowed; <= 0 disables the turn limit
	Clock     ClockMode     // Clock direction
	Duration  time.Duration // Countdown length (ClockDown only)
}

// TurnsExhausted reports whether the turn limit has been reached.
func (b Budget) TurnsExhausted(turns int) bool {
	return b.TurnLimit > 0 && turns >= b.TurnLimit
}

// TimeExhausted reports whether the countdown has reached zero.
func (b Budget) TimeExhausted(elapsed int) bool {
	return b.Clock == ClockDown && elapsed >= b.seconds()
}

// Exceeded reports whether either budget is spent.
func (b Budget) Exceeded(turns, elapsed int) bool {
	return b.TurnsExhausted(turns) || b.TimeExhausted(elapsed)
}

// Remaining returns the seconds left on the countdown, or -1 for ClockUp.
func (b Budget) Remaining(elapsed int) int {
	if b.Clock != ClockDown {
		return -1
	}
	return max(b.seconds()-elapsed, 0)
}

// Display formats the clock for the given elapsed seconds.
func (b Budget) Display(elapsed int) string {
	if b.Clock == ClockDown {
		return FormatClock(b.Remaining(elapsed))
	}
	return FormatClock(elapsed)
}

func (b Budget) seconds() int {
	return int(b.Duration / time.Second)
}

// FormatClock renders seconds as mm:ss. Minutes are not capped at 59.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
