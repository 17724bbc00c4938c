package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pairs SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session, with the name field prefilled
from the SSH user. Runs are stored in the server's database, and go to the
shared leaderboard when --leaderboard-url is set.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pairs/host_key

Examples:
  pairs serve                           # Listen on :23234 with auto-generated key
  pairs serve --ssh :2222               # Listen on port 2222
  pairs serve --host-key ./my_host_key  # Use specific host key
  pairs serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	settings, logger, closeLog := setup("pairs-ssh", true)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg,
		tui.WithSSHStore(store),
		tui.WithSSHBoard(sharedBoard(settings, logger)),
		tui.WithSSHSettings(settings),
		tui.WithSSHLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		return
	}

	fmt.Printf("Starting pairs SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}
