package config

import (
	_ "embed"
)

//go:embed defaults/pairs.yaml
var defaultPairsYAML []byte

// DefaultPairsConfig returns the built-in configuration.
// Used when the embedded YAML cannot be parsed.
func DefaultPairsConfig() PairsConfig {
	return PairsConfig{
		Faces:     []string{"♠", "♥", "♦", "♣", "★", "☀", "☂", "♪", "✿", "⚑"},
		TurnLimit: 25,
		Timer: TimerConfig{
			Mode:     TimerUp,
			Duration: 120,
		},
		Settle: SettleConfig{
			MismatchMS: 900,
			MatchMS:    200,
		},
		Leaderboard: LeaderboardConfig{
			Top:       5,
			TimeoutMS: 10000,
		},
		Confetti: ConfettiConfig{
			Pieces:     160,
			DurationMS: 7000,
		},
		Text: TextConfig{
			Instruction: "Match every pair within 25 turns to win.",
			WinMessage:  "You win!",
			LoseAction:  "You lose, better luck next time!",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPairsYAML
}
