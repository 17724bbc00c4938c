package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// Server defaults.
const (
	DefaultListLimit  = 100
	MaxListLimit      = 1000
	DefaultRateLimit  = 30 // Submissions per IP per minute
	maxSubmissionBody = 64 << 10
)

// Server serves a Board over the leaderboard protocol.
type Server struct {
	board     Board
	logger    *log.Logger
	metrics   *Metrics
	origins   []string
	rateLimit int
	router    chi.Router
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the request logger.
func WithServerLogger(l *log.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithMetrics records request and submission metrics and serves /metrics.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// WithAllowedOrigins sets the CORS origins. The default allows any origin.
func WithAllowedOrigins(origins ...string) ServerOption {
	return func(s *Server) { s.origins = origins }
}

// WithRateLimit sets the submissions allowed per IP per minute.
func WithRateLimit(perMinute int) ServerOption {
	return func(s *Server) { s.rateLimit = perMinute }
}

// NewServer builds the router for board.
func NewServer(board Board, opts ...ServerOption) *Server {
	s := &Server{
		board:     board,
		logger:    log.New(io.Discard),
		origins:   []string{"*"},
		rateLimit: DefaultRateLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Cache-Control"},
		MaxAge:         300,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(c.Handler)

	r.Get("/", s.handleTop)
	r.With(httprate.LimitByIP(s.rateLimit, time.Minute)).Post("/", s.handleSubmit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("leaderboard listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("leaderboard: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down leaderboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("leaderboard: shutdown: %w", err)
	}
	return nil
}

// handleTop returns ranked rows as [[name, turns, time], ...].
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, submitResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, MaxListLimit)
	}

	entries, err := s.board.Top(r.Context(), limit)
	if err != nil {
		s.logger.Error("loading scores failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, submitResponse{Error: "scores unavailable"})
		return
	}

	rows := make([][]any, len(entries))
	for i, e := range entries {
		rows[i] = []any{e.Name, e.Turns, e.Time}
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, rows)
}

// handleSubmit accepts a JSON record with any content type, since clients
// send it as text/plain.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var rec Record
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBody))
	if err := dec.Decode(&rec); err != nil {
		s.countSubmission("invalid", "")
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "invalid JSON body"})
		return
	}
	if err := rec.Validate(); err != nil {
		s.countSubmission("invalid", rec.Result)
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: err.Error()})
		return
	}

	if err := s.board.Submit(r.Context(), rec); err != nil {
		s.countSubmission("failed", rec.Result)
		s.logger.Error("saving score failed", "name", rec.Name, "err", err)
		writeJSON(w, http.StatusInternalServerError, submitResponse{Error: "could not save score"})
		return
	}

	s.countSubmission("accepted", rec.Result)
	s.logger.Info("score saved", "name", rec.Name, "turns", rec.Turns, "time", rec.Time, "result", rec.Result)
	writeJSON(w, http.StatusOK, submitResponse{Success: true})
}

func (s *Server) countSubmission(status, result string) {
	if s.metrics != nil {
		s.metrics.observeSubmission(status, result)
	}
}

// requestLogger logs each request and records its metrics.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"remote", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		)
		if s.metrics != nil {
			s.metrics.observeRequest(r.Method, route, status, elapsed.Seconds())
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
