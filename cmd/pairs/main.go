// pairs is a memory-matching game for the terminal with a shared leaderboard.
//
// Usage:
//
//	pairs list                     - List game modes
//	pairs play [classic|timed]     - Play a game
//	pairs scores [mode]            - Show the local run log
//	pairs serve                    - Start SSH server for remote play
//	pairs leaderboard              - Serve the leaderboard over HTTP
//
// Global flags:
//
//	--fps <rate>             - Set tick rate (default: 60)
//	--seed <value>           - Set RNG seed for reproducible decks
//	--db <path>              - Set database path (default: ~/.pairs/runs.db)
//	--config <path>          - Custom game config YAML
//	--difficulty <preset>    - easy, normal or hard
//	--leaderboard-url <url>  - Shared leaderboard endpoint
//	--log-file <path>        - Write logs to a file
//	--log-level <level>      - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-pairs/internal/games/pairs"
)

var (
	// Global flags
	flagFPS            int
	flagSeed           int64
	flagDBPath         string
	flagConfig         string
	flagDifficulty     string
	flagLeaderboardURL string
	flagLogFile        string
	flagLogLevel       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Pairs - a memory-matching game for your terminal",
	Long: `Pairs deals a shuffled board of face-down cards. Flip two at a time
and match every pair before you run out of turns.

Available commands:
  list         - Show game modes
  play         - Play a game
  scores       - View the local run log
  serve        - Start SSH server for remote play
  leaderboard  - Serve the shared leaderboard over HTTP

Examples:
  pairs play
  pairs play timed --difficulty hard
  pairs serve --ssh :2222
  pairs leaderboard --addr :8080`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pairs/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboardURL, "leaderboard-url", "", "Shared leaderboard URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leaderboardCmd)
}
