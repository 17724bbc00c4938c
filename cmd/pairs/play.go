package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play [classic|timed]",
	Short: "Play a game",
	Long: `Start the game on the name and mode screen.

Modes:
  classic  - Match every pair within the turn limit (default)
  timed    - Match every pair before the countdown ends

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Flip the card under the cursor
  R            - Play again (after the game ends)
  Tab          - Show scores (after the game ends)
  B/Esc        - Back to the start screen
  Q/Ctrl+C     - Quit

Finished runs are saved to the local database and submitted to the
leaderboard at --leaderboard-url (or PAIRS_LEADERBOARD_URL) when set.

Examples:
  pairs play
  pairs play timed
  pairs play --name ann --difficulty easy
  pairs play --config ./my-pairs.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name to prefill")
}

func runPlay(cmd *cobra.Command, args []string) {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	mode, err := modeFromArg(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pairs list' to see available modes.")
		os.Exit(1)
	}

	settings, logger, closeLog := setup("pairs", false)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open run log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(cfg, tui.Options{
		Store:    store,
		Board:    sharedBoard(settings, logger),
		Settings: settings,
		Logger:   logger,
		Player:   flagName,
		Mode:     mode,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
