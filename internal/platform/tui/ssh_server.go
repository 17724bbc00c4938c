package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/leaderboard"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pairs/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server that runs one pairs session per
// connection. Every session shares the store and the leaderboard.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	board    leaderboard.Board
	settings config.PairsConfig
	logger   *log.Logger
}

// SSHOption configures an SSHServer.
type SSHOption func(*SSHServer)

// WithSSHStore sets the run log shared by all sessions.
func WithSSHStore(s *storage.Store) SSHOption {
	return func(srv *SSHServer) { srv.store = s }
}

// WithSSHBoard sets a shared leaderboard. Without one, sessions use the store.
func WithSSHBoard(b leaderboard.Board) SSHOption {
	return func(srv *SSHServer) { srv.board = b }
}

// WithSSHSettings sets the game settings shown to sessions.
func WithSSHSettings(cfg config.PairsConfig) SSHOption {
	return func(srv *SSHServer) { srv.settings = cfg }
}

// WithSSHLogger sets the server logger.
func WithSSHLogger(l *log.Logger) SSHOption {
	return func(srv *SSHServer) { srv.logger = l }
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, opts ...SSHOption) (*SSHServer, error) {
	srv := &SSHServer{
		config:   cfg,
		settings: config.DefaultPairsConfig(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.config.TickRate <= 0 {
		srv.config.TickRate = core.DefaultConfig().TickRate
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".pairs", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates an app model for each SSH session, with the name
// field prefilled from the SSH user.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewModel(cfg, Options{
		Store:    s.store,
		Board:    s.board,
		Settings: s.settings,
		Logger:   s.logger.With("session", sessionID(sess)),
		Player:   sess.User(),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionID returns the ID stored on the session context, or a fresh one.
func sessionID(sess ssh.Session) string {
	if id, ok := sess.Context().Value(sessionIDKey{}).(string); ok {
		return id
	}
	return uuid.NewString()
}

type sessionIDKey struct{}

// loggingMiddleware tags each session with an ID and logs its lifetime.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		id := uuid.NewString()
		sess.Context().SetValue(sessionIDKey{}, id)

		start := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"session", id,
			"user", sess.User(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
