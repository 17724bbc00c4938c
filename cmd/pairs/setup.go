package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/games/pairs"
	"github.com/vovakirdan/tui-pairs/internal/leaderboard"
	"github.com/vovakirdan/tui-pairs/internal/registry"
)

// loadSettings builds the game config: .env, then YAML, then PAIRS_*
// variables, then the difficulty preset and command-line overrides.
func loadSettings() (config.PairsConfig, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.PairsConfig{}, err
	}

	cfg, err := config.LoadPairs(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagLeaderboardURL != "" {
		cfg.Leaderboard.URL = flagLeaderboardURL
	}
	return cfg, cfg.Validate()
}

// newLogger creates the command logger. Logs go to --log-file when set;
// otherwise servers log to stderr and the interactive game discards them,
// since the terminal belongs to the UI.
func newLogger(prefix string, toStderr bool) (*log.Logger, func(), error) {
	level := flagLogLevel
	if level == "" {
		level = os.Getenv(config.EnvLogLevel)
	}
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case toStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
	return logger, closeFn, nil
}

// setup loads settings and the logger and hands both to the game package.
func setup(prefix string, toStderr bool) (config.PairsConfig, *log.Logger, func()) {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(prefix, toStderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pairs.Configure(settings)
	pairs.SetLogger(logger)
	return settings, logger, closeLog
}

// sharedBoard returns the HTTP leaderboard client, or nil when no URL is
// configured and runs only go to the local store.
func sharedBoard(settings config.PairsConfig, logger *log.Logger) leaderboard.Board {
	if settings.Leaderboard.URL == "" {
		return nil
	}
	return leaderboard.NewClient(settings.Leaderboard.URL,
		leaderboard.WithTimeout(settings.LeaderboardTimeout()),
		leaderboard.WithLogger(logger),
	)
}

// modeFromArg maps "classic" and "timed" to mode IDs and accepts IDs as is.
func modeFromArg(arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "", "classic":
		return pairs.IDClassic, nil
	case "timed":
		return pairs.IDTimed, nil
	}
	if registry.Exists(arg) {
		return arg, nil
	}
	return "", fmt.Errorf("unknown mode %q", arg)
}
