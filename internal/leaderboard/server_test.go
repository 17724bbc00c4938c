package leaderboard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
)

// memBoard is an in-memory Board ranked by result, turns, then seconds.
type memBoard struct {
	mu      sync.Mutex
	records []Record
	failTop bool
}

func (b *memBoard) Submit(_ context.Context, rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, rec)
	return nil
}

func (b *memBoard) Top(_ context.Context, n int) ([]Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failTop {
		return nil, errors.New("disk on fire")
	}

	recs := append([]Record(nil), b.records...)
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Lost() != recs[j].Lost() {
			return !recs[i].Lost()
		}
		if recs[i].Turns != recs[j].Turns {
			return recs[i].Turns < recs[j].Turns
		}
		return recs[i].ElapsedSeconds() < recs[j].ElapsedSeconds()
	})

	out := make([]Entry, 0, n)
	for _, r := range recs {
		if len(out) == n {
			break
		}
		out = append(out, Entry{Name: r.Name, Turns: r.Turns, Time: r.Time})
	}
	return out, nil
}

func TestServerRoundTripWithClient(t *testing.T) {
	board := &memBoard{}
	srv := httptest.NewServer(NewServer(board, WithMetrics(NewMetrics())).Handler())
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	for _, rec := range []Record{
		{Name: "ann", Turns: 6, Time: "01:00"},
		{Name: "bo", Turns: 2, Time: "00:45", Result: ResultWon},
		{Name: "cy", Turns: 25, Time: "00:30", Result: ResultLost},
	} {
		if err := c.Submit(ctx, rec); err != nil {
			t.Fatalf("Submit(%s) failed: %v", rec.Name, err)
		}
	}

	top, err := c.Top(ctx, 5)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}

	want := []string{"bo", "ann", "cy"}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), top)
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("rank %d: expected %s, got %s", i+1, name, top[i].Name)
		}
	}
}

func TestServerRejectsInvalidSubmission(t *testing.T) {
	board := &memBoard{}
	srv := httptest.NewServer(NewServer(board).Handler())
	defer srv.Close()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "hello"},
		{"empty name", `{"name":"","turns":1,"time":"00:10"}`},
		{"bad time", `{"name":"ann","turns":1,"time":"ten"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL, "text/plain;charset=utf-8", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), `"success":false`) {
				t.Errorf("unexpected body %s", body)
			}
		})
	}

	if len(board.records) != 0 {
		t.Errorf("invalid submissions stored: %+v", board.records)
	}
}

func TestServerListLimit(t *testing.T) {
	board := &memBoard{}
	for i := range 5 {
		board.records = append(board.records, Record{Name: "p", Turns: i, Time: "00:10"})
	}
	srv := httptest.NewServer(NewServer(board).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?limit=2")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	rows, err := ParseRows(body)
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}

	resp, err = http.Get(srv.URL + "/?limit=-1")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", resp.StatusCode)
	}
}

func TestServerTopFailure(t *testing.T) {
	srv := httptest.NewServer(NewServer(&memBoard{failTop: true}).Handler())
	defer srv.Close()

	_, err := NewClient(srv.URL).Top(context.Background(), 5)
	if err == nil {
		t.Error("expected error when the board fails")
	}
}

func TestServerHealthAndMetrics(t *testing.T) {
	srv := httptest.NewServer(NewServer(&memBoard{}, WithMetrics(NewMetrics())).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health: expected 200, got %d", resp.StatusCode)
	}

	if err := NewClient(srv.URL).Submit(context.Background(), Record{Name: "ann", Turns: 1, Time: "00:05"}); err != nil {
		t.Fatal(err)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, want := range []string{
		`pairs_leaderboard_submissions_total{result="won",status="accepted"} 1`,
		`pairs_leaderboard_http_requests_total`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestServerWithoutMetrics(t *testing.T) {
	srv := httptest.NewServer(NewServer(&memBoard{}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 without metrics, got %d", resp.StatusCode)
	}
}

func TestServerCORS(t *testing.T) {
	srv := httptest.NewServer(NewServer(&memBoard{}).Handler())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	req.Header.Set("Origin", "https://game.example.com")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", got)
	}
}

func TestServerRateLimit(t *testing.T) {
	srv := httptest.NewServer(NewServer(&memBoard{}, WithRateLimit(2)).Handler())
	defer srv.Close()

	codes := make([]int, 0, 3)
	for range 3 {
		resp, err := http.Post(srv.URL, "text/plain", strings.NewReader(`{"name":"a","turns":1,"time":"00:01"}`))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 200, 200, 429; got %v", codes)
	}
}

func TestServerCountsSubmissions(t *testing.T) {
	metrics := NewMetrics()
	srv := httptest.NewServer(NewServer(&memBoard{}, WithMetrics(metrics)).Handler())
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()
	if err := c.Submit(ctx, Record{Name: "ann", Turns: 4, Time: "00:50"}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if err := c.Submit(ctx, Record{Name: "bo", Turns: 25, Time: "02:00", Result: ResultLost}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	families, err := metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "pairs_leaderboard_submissions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			counts[labels["status"]+"/"+labels["result"]] += m.GetCounter().GetValue()
		}
	}

	if counts["accepted/"+ResultWon] != 1 || counts["accepted/"+ResultLost] != 1 {
		t.Errorf("unexpected submission counts: %v", counts)
	}
}
