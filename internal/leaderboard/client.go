package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a single leaderboard request.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

// Client speaks the leaderboard protocol to a remote endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for failed calls.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the endpoint at url.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Board = (*Client)(nil)

type submitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Submit posts a finished run. The body is JSON sent as text/plain, which
// spreadsheet script endpoints accept without a CORS preflight.
func (c *Client) Submit(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("leaderboard: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	status, data, err := c.do(req)
	if err != nil {
		c.logger.Warn("score submission failed", "err", err)
		return err
	}

	var resp submitResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		if status >= 300 {
			return fmt.Errorf("leaderboard: submit: unexpected status %d", status)
		}
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !resp.Success {
		c.logger.Warn("score submission rejected", "status", status, "error", resp.Error)
		return fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}
	return nil
}

// Top fetches the ranked list and returns at most n valid entries.
// n <= 0 returns every entry.
func (c *Client) Top(ctx context.Context, n int) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	status, data, err := c.do(req)
	if err != nil {
		c.logger.Warn("loading scores failed", "err", err)
		return nil, err
	}
	if status >= 300 {
		return nil, fmt.Errorf("leaderboard: top: unexpected status %d", status)
	}

	entries, err := ParseRows(data)
	if err != nil {
		c.logger.Warn("malformed scores response", "err", err)
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("leaderboard: %s %s: %w", req.Method, c.url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("leaderboard: read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// ParseRows decodes a JSON array of [name, turns, time] rows.
// Rows that are too short or have empty fields are skipped; anything other
// than a JSON array is ErrMalformedResponse.
func ParseRows(data []byte) ([]Entry, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, raw := range rows {
		if e, ok := parseRow(raw); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func parseRow(raw json.RawMessage) (Entry, bool) {
	var cells []any
	if err := json.Unmarshal(raw, &cells); err != nil || len(cells) < 3 {
		return Entry{}, false
	}

	name := cellString(cells[0])
	turns, ok := cellInt(cells[1])
	clock := cellClock(cells[2])
	if name == "" || !ok || clock == "" {
		return Entry{}, false
	}
	return Entry{Name: name, Turns: turns, Time: clock}, true
}

func cellString(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func cellInt(v any) (int, bool) {
	switch v := v.(type) {
	case float64:
		return int(v), v >= 0
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil && n >= 0
	default:
		return 0, false
	}
}

// cellClock accepts mm:ss, or a timestamp such as a spreadsheet returns
// when it turned "01:23" into a time of day.
func cellClock(v any) string {
	s := cellString(v)
	if s == "" {
		return ""
	}
	if secs, err := ParseClock(s); err == nil {
		return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return fmt.Sprintf("%02d:%02d", t.Hour()*60+t.Minute(), t.Second())
	}
	return s
}
