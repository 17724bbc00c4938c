package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientSubmit(t *testing.T) {
	var got Record
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain;charset=utf-8" {
			t.Errorf("unexpected content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body is not JSON: %s", body)
		}
		io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	rec := Record{Name: "ann", Turns: 4, Time: "00:37"}
	if err := c.Submit(context.Background(), rec); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got.Name != "ann" || got.Turns != 4 || got.Time != "00:37" {
		t.Errorf("server received %+v", got)
	}
}

func TestClientSubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rejected", http.StatusOK, `{"success":false,"error":"sheet locked"}`, ErrRejected},
		{"not json", http.StatusOK, `<html>oops</html>`, ErrMalformedResponse},
		{"rejected with status", http.StatusBadRequest, `{"success":false,"error":"bad"}`, ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			err := NewClient(srv.URL).Submit(context.Background(), Record{Name: "a", Time: "00:01"})
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClientSubmitServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Submit(context.Background(), Record{Name: "a", Time: "00:01"})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Errorf("status error reported as malformed: %v", err)
	}
}

func TestClientTop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cache-Control") != "no-cache" {
			t.Errorf("missing no-cache header")
		}
		io.WriteString(w, `[
			["ann", 3, "00:40"],
			["bo", "5", "1899-12-30T00:01:23.000Z"],
			["", 2, "00:10"],
			["cy", 2],
			"junk",
			["dee", 6, "01:00", "extra"],
			["eve", 7, "01:10"],
			["fay", 8, "01:20"],
			["gus", 9, "01:30"]
		]`)
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}

	want := []Entry{
		{Name: "ann", Turns: 3, Time: "00:40"},
		{Name: "bo", Turns: 5, Time: "01:23"},
		{Name: "dee", Turns: 6, Time: "01:00"},
		{Name: "eve", Turns: 7, Time: "01:10"},
		{Name: "fay", Turns: 8, Time: "01:20"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(entries), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestClientTopMalformed(t *testing.T) {
	for _, body := range []string{`{"error":"nope"}`, `not json`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		}))

		_, err := NewClient(srv.URL).Top(context.Background(), 5)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("body %q: expected ErrMalformedResponse, got %v", body, err)
		}
		srv.Close()
	}
}

func TestClientTopEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL).Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %+v", entries)
	}
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	if _, err := c.Top(context.Background(), 5); err == nil {
		t.Error("expected timeout error")
	}
}
