package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		color    Color
		expected string
	}{
		{ColorDefault, ""},
		{ColorGold, "220"},
		{ColorNavy, "18"},
		{Color(200), ""},
	}

	for _, tc := range tests {
		if got := tc.color.ANSI(); got != tc.expected {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tc.color, got, tc.expected)
		}
	}
}

func TestPaletteOrder(t *testing.T) {
	p := Palette()
	if p[0] != ColorDefault || p[len(p)-1] != ColorSilver {
		t.Errorf("unexpected palette bounds: %v", p)
	}
	for i, c := range p {
		if c != Color(i) {
			t.Fatalf("palette[%d] = %d", i, c)
		}
		if i > 0 && c.ANSI() == "" {
			t.Errorf("color %d has no code", c)
		}
	}
}
