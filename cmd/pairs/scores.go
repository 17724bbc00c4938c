package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/registry"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresClear  bool
	flagScoresBrowse bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the local run log",
	Long: `Display the best local runs for a mode, ranked by outcome, turns and time.

Examples:
  pairs scores
  pairs scores timed --limit 20
  pairs scores --player ann
  pairs scores --browse
  pairs scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show the most recent runs of one player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresBrowse, "browse", false, "Browse all modes interactively")
}

func runScores(cmd *cobra.Command, args []string) {
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

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresBrowse {
		browseScores(store)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagScoresClear {
		if err := store.ClearRuns(ctx, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Cleared all runs for %s.\n", mode)
		return
	}

	title := mode
	if game, err := registry.Create(mode); err == nil {
		title = game.Title()
	}

	var runs []storage.Run
	if flagScoresPlayer != "" {
		runs, err = store.PlayerRuns(ctx, flagScoresPlayer, flagScoresLimit)
		title = fmt.Sprintf("Runs by %s", flagScoresPlayer)
	} else {
		runs, err = store.TopRuns(ctx, mode, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pairs play' to set the first one!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-5s  %-5s  %-6s  %s\n", "Rank", "Player", "Turns", "Time", "Result", "Date")
	fmt.Printf("  %-4s  %-16s  %-5s  %-5s  %-6s  %s\n", "----", "------", "-----", "----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-16s  %-5d  %-5s  %-6s  %s\n",
			i+1, r.Player, r.Turns, r.Time, r.Outcome, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if flagScoresPlayer != "" {
		return
	}

	stats, err := store.Stats(ctx, mode)
	if err != nil || stats.Runs == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Losses: %d  Avg turns: %.1f\n",
		stats.Runs, stats.Wins, stats.Losses, stats.AvgTurns)
	if stats.Wins > 0 {
		fmt.Printf("Best: %d turns, %02d:%02d\n", stats.BestTurns, stats.BestSeconds/60, stats.BestSeconds%60)
	}
}

// browseScores opens the interactive run history.
func browseScores(store *storage.Store) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height}
	if err := tui.RunScoreboard(store, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
