package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. Empty input means no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts the turn and time budgets for a difficulty preset.
// The empty preset leaves the config untouched.
func ApplyPreset(cfg *PairsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.TurnLimit = 35
		cfg.Timer.Duration = 180
	case DifficultyNormal:
		cfg.TurnLimit = 25
		cfg.Timer.Duration = 120
	case DifficultyHard:
		cfg.TurnLimit = 18
		cfg.Timer.Duration = 75
		cfg.Settle.MismatchMS = 600
	default:
		return
	}
	cfg.Text.Instruction = fmt.Sprintf("Match every pair within %d turns to win.", cfg.TurnLimit)
}
