// Package config provides YAML-based game configuration loading,
// environment overrides and difficulty presets for pairs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Timer modes.
const (
	TimerUp   = "up"   // count elapsed time with no cap
	TimerDown = "down" // count down from Duration, losing at zero
)

// PairsConfig contains all configuration for the memory game.
type PairsConfig struct {
	Faces       []string          `yaml:"faces"`
	TurnLimit   int               `yaml:"turn_limit"`
	Timer       TimerConfig       `yaml:"timer"`
	Settle      SettleConfig      `yaml:"settle"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Confetti    ConfettiConfig    `yaml:"confetti"`
	Text        TextConfig        `yaml:"text"`
}

// TimerConfig defines the run clock.
type TimerConfig struct {
	Mode     string `yaml:"mode"`     // "up" or "down"
	Duration int    `yaml:"duration"` // Countdown length in seconds (mode "down")
}

// SettleConfig defines how long the board stays locked after a resolution.
type SettleConfig struct {
	MismatchMS int `yaml:"mismatch_ms"`
	MatchMS    int `yaml:"match_ms"`
}

// LeaderboardConfig points at the remote score endpoint.
type LeaderboardConfig struct {
	URL       string `yaml:"url"`        // Empty means use the local score database
	Top       int    `yaml:"top"`        // Entries shown after a run
	TimeoutMS int    `yaml:"timeout_ms"` // Per-request timeout
}

// ConfettiConfig defines the victory animation.
type ConfettiConfig struct {
	Pieces     int `yaml:"pieces"`
	DurationMS int `yaml:"duration_ms"`
}

// TextConfig holds player-facing copy.
type TextConfig struct {
	Instruction string `yaml:"instruction"`
	WinMessage  string `yaml:"win_message"`
	LoseAction  string `yaml:"lose_action"`
	LoseURL     string `yaml:"lose_url"`
}

// MismatchDelay returns the mismatch settle delay.
func (c PairsConfig) MismatchDelay() time.Duration {
	return time.Duration(c.Settle.MismatchMS) * time.Millisecond
}

// MatchDelay returns the pause between the final match and the win announcement.
func (c PairsConfig) MatchDelay() time.Duration {
	return time.Duration(c.Settle.MatchMS) * time.Millisecond
}

// TimerDuration returns the countdown length.
func (c PairsConfig) TimerDuration() time.Duration {
	return time.Duration(c.Timer.Duration) * time.Second
}

// LeaderboardTimeout returns the per-request leaderboard timeout.
func (c PairsConfig) LeaderboardTimeout() time.Duration {
	return time.Duration(c.Leaderboard.TimeoutMS) * time.Millisecond
}

// ConfettiDuration returns how long the victory animation runs.
func (c PairsConfig) ConfettiDuration() time.Duration {
	return time.Duration(c.Confetti.DurationMS) * time.Millisecond
}

// Validate reports every problem in the configuration at once.
func (c PairsConfig) Validate() error {
	var errs []error

	if len(c.Faces) == 0 {
		errs = append(errs, errors.New("faces: at least one face is required"))
	}
	seen := make(map[string]bool, len(c.Faces))
	for i, f := range c.Faces {
		f = strings.TrimSpace(f)
		if f == "" {
			errs = append(errs, fmt.Errorf("faces[%d]: empty face", i))
			continue
		}
		if seen[f] {
			errs = append(errs, fmt.Errorf("faces[%d]: duplicate face %q", i, f))
		}
		seen[f] = true
	}

	if c.TurnLimit < 0 {
		errs = append(errs, fmt.Errorf("turn_limit: must not be negative, got %d", c.TurnLimit))
	}

	if c.Timer.Mode != TimerUp && c.Timer.Mode != TimerDown {
		errs = append(errs, fmt.Errorf("timer.mode: unknown mode %q (want %q or %q)", c.Timer.Mode, TimerUp, TimerDown))
	}
	// The timed mode counts down from timer.duration whatever timer.mode says.
	if c.Timer.Duration <= 0 {
		errs = append(errs, fmt.Errorf("timer.duration: must be positive, got %d", c.Timer.Duration))
	}

	if c.Settle.MismatchMS < 0 || c.Settle.MatchMS < 0 {
		errs = append(errs, errors.New("settle: delays must not be negative"))
	}
	if c.Leaderboard.TimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("leaderboard.timeout_ms: must be positive, got %d", c.Leaderboard.TimeoutMS))
	}
	if c.Leaderboard.Top < 0 {
		errs = append(errs, fmt.Errorf("leaderboard.top: must not be negative, got %d", c.Leaderboard.Top))
	}
	if c.Confetti.Pieces < 0 {
		errs = append(errs, fmt.Errorf("confetti.pieces: must not be negative, got %d", c.Confetti.Pieces))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid pairs config: %w", err)
	}
	return nil
}
