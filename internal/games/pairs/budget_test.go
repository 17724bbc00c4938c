package pairs

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{7, "00:07"},
		{59, "00:59"},
		{60, "01:00"},
		{125, "02:05"},
		{3600, "60:00"},
		{-5, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestBudgetTurns(t *testing.T) {
	b := Budget{TurnLimit: 18}
	if b.TurnsExhausted(17) {
		t.Error("17 turns should not exhaust a limit of 18")
	}
	if !b.TurnsExhausted(18) {
		t.Error("18 turns should exhaust a limit of 18")
	}

	unlimited := Budget{TurnLimit: 0}
	if unlimited.TurnsExhausted(1000) {
		t.Error("zero limit should never be exhausted")
	}
}

func TestBudgetClock(t *testing.T) {
	up := Budget{Clock: ClockUp, Duration: 10 * time.Second}
	if up.TimeExhausted(1000) {
		t.Error("count-up clock should never run out")
	}
	if got := up.Display(75); got != "01:15" {
		t.Errorf("up display: expected 01:15, got %q", got)
	}
	if up.Remaining(5) != -1 {
		t.Errorf("up remaining: expected -1, got %d", up.Remaining(5))
	}

	down := Budget{Clock: ClockDown, Duration: 90 * time.Second}
	if down.TimeExhausted(89) {
		t.Error("countdown ran out early")
	}
	if !down.TimeExhausted(90) {
		t.Error("countdown should run out at zero")
	}
	if got := down.Display(30); got != "01:00" {
		t.Errorf("down display: expected 01:00, got %q", got)
	}
	if got := down.Display(200); got != "00:00" {
		t.Errorf("down display past zero: expected 00:00, got %q", got)
	}
}

func TestParseClockMode(t *testing.T) {
	if m, err := ParseClockMode("down"); err != nil || m != ClockDown {
		t.Errorf("ParseClockMode(down) = %v, %v", m, err)
	}
	if m, err := ParseClockMode(""); err != nil || m != ClockUp {
		t.Errorf("ParseClockMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseClockMode("sideways"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
