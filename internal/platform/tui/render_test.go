package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorGold)
	s.DrawTextColor(2, 0, "cd", core.ColorSky)
	s.DrawText(0, 1, "♠♥")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "cd", "♠♥"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for _, c := range core.Palette() {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
}
