package pairs

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// Confetti works in a virtual pixel space so the fall and sway rates read
// the same at any terminal size. One cell is cellPxW x cellPxH pixels.
const (
	cellPxW    = 8.0
	cellPxH    = 16.0
	confettiHz = 60.0 // Fall speeds are pixels per frame at this rate
)

var confettiPalette = []core.Color{
	core.ColorSky, core.ColorSky, core.ColorBrightBlue, core.ColorBrightBlue, core.ColorBrightBlue,
	core.ColorBlue, core.ColorBlue, core.ColorNavy, core.ColorNavy, core.ColorNavy,
	core.ColorSilver, core.ColorSilver, core.ColorGray,
}

var confettiGlyphs = []rune{'■', '◆', '▬', '▮'}

// piece is one falling confetti square.
type piece struct {
	x, y     float64 // Pixels
	speed    float64 // Pixels per frame, 2..6
	rot      float64 // Degrees
	rotSpeed float64
	color    core.Color
}

// Confetti is the victory animation.
type Confetti struct {
	pieces []piece
	w, h   float64
}

// NewConfetti scatters n pieces above a screen of the given size.
// n is capped at a quarter of the screen cells.
func NewConfetti(rng *rand.Rand, screenW, screenH, n int) *Confetti {
	n = min(n, screenW*screenH/4)
	c := &Confetti{
		pieces: make([]piece, 0, max(n, 0)),
		w:      float64(screenW) * cellPxW,
		h:      float64(screenH) * cellPxH,
	}
	for range n {
		c.pieces = append(c.pieces, piece{
			x:        rng.Float64() * c.w,
			y:        rng.Float64() * -c.h,
			speed:    2 + rng.Float64()*4,
			rot:      float64(rng.Intn(360)),
			rotSpeed: (rng.Float64() - 0.5) * 6,
			color:    confettiPalette[rng.Intn(len(confettiPalette))],
		})
	}
	return c
}

// Len returns the number of pieces.
func (c *Confetti) Len() int {
	return len(c.pieces)
}

// Update moves every piece forward by dt.
func (c *Confetti) Update(dt time.Duration) {
	frames := dt.Seconds() * confettiHz
	for i := range c.pieces {
		p := &c.pieces[i]
		p.y += p.speed * frames
		p.x += math.Sin(p.y/50) * 2 * frames
		p.rot += p.rotSpeed * frames
	}
}

// Render draws the visible pieces.
func (c *Confetti) Render(dst *core.Screen) {
	for _, p := range c.pieces {
		if p.y < 0 || p.x < 0 {
			continue
		}
		col := int(p.x / cellPxW)
		row := int(p.y / cellPxH)
		if col >= dst.Width() || row >= dst.Height() {
			continue
		}
		dst.SetColor(col, row, glyphFor(p.rot), p.color)
	}
}

func glyphFor(rot float64) rune {
	deg := math.Mod(rot, 360)
	if deg < 0 {
		deg += 360
	}
	return confettiGlyphs[int(deg/90)%len(confettiGlyphs)]
}
