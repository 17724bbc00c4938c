package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvLeaderboardURL = "PAIRS_LEADERBOARD_URL"
	EnvTurnLimit      = "PAIRS_TURN_LIMIT"
	EnvTimerMode      = "PAIRS_TIMER_MODE"
	EnvLogLevel       = "PAIRS_LOG_LEVEL"
)

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides config fields from PAIRS_* environment variables.
func ApplyEnv(cfg *PairsConfig) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *PairsConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLeaderboardURL); ok {
		cfg.Leaderboard.URL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTurnLimit); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTurnLimit, err)
		}
		cfg.TurnLimit = n
	}
	if v, ok := lookup(EnvTimerMode); ok && strings.TrimSpace(v) != "" {
		cfg.Timer.Mode = strings.ToLower(strings.TrimSpace(v))
	}
	return cfg.Validate()
}
