package leaderboard

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"01:23", 83, false},
		{" 75:05 ", 4505, false},
		{"1:60", 0, true},
		{"01:5", 0, true},
		{"0123", 0, true},
		{"aa:10", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	valid := Record{Name: "ann", Turns: 3, Time: "00:42"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	bad := Record{Name: "", Turns: -1, Time: "later", Result: "draw"}
	err := bad.Validate()
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestFromRun(t *testing.T) {
	rec := FromRun(core.RunResult{Player: "ann", Mode: "pairs_timed", Turns: 7, Time: "01:10", Seconds: 50})

	if rec.Name != "ann" || rec.Turns != 7 || rec.Time != "01:10" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Result != ResultLost || !rec.Lost() {
		t.Errorf("expected lost result, got %q", rec.Result)
	}
	if rec.ElapsedSeconds() != 50 {
		t.Errorf("expected 50 elapsed seconds, got %d", rec.ElapsedSeconds())
	}

	noSeconds := Record{Time: "02:00"}
	if noSeconds.ElapsedSeconds() != 120 {
		t.Errorf("expected seconds parsed from time, got %d", noSeconds.ElapsedSeconds())
	}
}
