package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/leaderboard"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	flagHTTPAddr  string
	flagBoardMode string
	flagOrigins   string
	flagRateLimit int
	flagNoMetrics bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Serve the shared leaderboard over HTTP",
	Long: `Start an HTTP server that speaks the leaderboard protocol used by
'pairs play --leaderboard-url'.

Endpoints:
  GET  /         Ranked rows as [[name, turns, time], ...] (?limit=N)
  POST /         Submit {"name", "turns", "time"} as text/plain or JSON
  GET  /health   Liveness check
  GET  /metrics  Prometheus metrics (unless --no-metrics)

Runs are stored in the database given by --db.

Examples:
  pairs leaderboard
  pairs leaderboard --addr :9000 --rate-limit 10
  pairs leaderboard --mode pairs_timed --origins https://example.com`,
	Run: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address (host:port)")
	leaderboardCmd.Flags().StringVar(&flagBoardMode, "mode", "", "Only rank runs of this mode (default: all modes)")
	leaderboardCmd.Flags().StringVar(&flagOrigins, "origins", "*", "Comma-separated CORS origins")
	leaderboardCmd.Flags().IntVar(&flagRateLimit, "rate-limit", leaderboard.DefaultRateLimit, "Submissions per minute per IP")
	leaderboardCmd.Flags().BoolVar(&flagNoMetrics, "no-metrics", false, "Disable the /metrics endpoint")
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	_, logger, closeLog := setup("pairs-board", true)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	opts := []leaderboard.ServerOption{
		leaderboard.WithServerLogger(logger),
		leaderboard.WithAllowedOrigins(strings.Split(flagOrigins, ",")...),
		leaderboard.WithRateLimit(flagRateLimit),
	}
	if !flagNoMetrics {
		opts = append(opts, leaderboard.WithMetrics(leaderboard.NewMetrics()))
	}

	server := leaderboard.NewServer(store.Board(flagBoardMode), opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, flagHTTPAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}
