package pairs

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

func TestConfettiCappedByScreen(t *testing.T) {
	c := NewConfetti(rand.New(rand.NewSource(1)), 10, 4, 160)
	if c.Len() != 10 {
		t.Errorf("expected 10 pieces on a 10x4 screen, got %d", c.Len())
	}
}

func TestConfettiFalls(t *testing.T) {
	c := NewConfetti(rand.New(rand.NewSource(1)), 80, 24, 50)

	for _, p := range c.pieces {
		if p.y > 0 {
			t.Fatalf("piece starts on screen at y=%.1f", p.y)
		}
		if p.speed < 2 || p.speed > 6 {
			t.Fatalf("speed out of range: %.2f", p.speed)
		}
		if !slices.Contains(confettiPalette, p.color) {
			t.Fatalf("color %v not in palette", p.color)
		}
	}

	before := make([]float64, c.Len())
	for i, p := range c.pieces {
		before[i] = p.y
	}
	c.Update(time.Second)
	for i, p := range c.pieces {
		if p.y <= before[i] {
			t.Errorf("piece %d did not fall: %.1f -> %.1f", i, before[i], p.y)
		}
	}
}

func TestConfettiRendersVisiblePieces(t *testing.T) {
	c := NewConfetti(rand.New(rand.NewSource(3)), 80, 24, 100)
	c.Update(3 * time.Second)

	screen := core.NewScreen(80, 24)
	c.Render(screen)

	drawn := 0
	for y := range screen.Height() {
		for x := range screen.Width() {
			if slices.Contains(confettiGlyphs, screen.Get(x, y)) {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("no confetti drawn after 3s")
	}
}

func TestGlyphForWrapsRotation(t *testing.T) {
	if glyphFor(-10) != glyphFor(350) {
		t.Error("negative rotation not normalized")
	}
	if glyphFor(0) != confettiGlyphs[0] || glyphFor(95) != confettiGlyphs[1] {
		t.Error("unexpected glyph mapping")
	}
}
