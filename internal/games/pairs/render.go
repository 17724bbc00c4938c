package pairs

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

const (
	cardWidth    = 6 // Box width including borders
	cardHeight   = 3 // Box height including borders
	cardGap      = 1 // Blank columns/rows between cards
	hudHeight    = 3 // Title, stats, blank line
	footerHeight = 2 // Instruction and controls
)

const hiddenFace = "??"

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	gridW, _ := g.grid.Size()
	boardX := (g.screenW - gridW) / 2
	board := g.grid.Bounds(boardX, hudHeight)

	g.renderHUD(dst, boardX, gridW)
	g.renderBoard(dst, board.X, board.Y)
	g.renderFooter(dst)

	if g.confetti != nil {
		g.confetti.Render(dst)
	}
	cx, cy := board.Center()
	g.renderOverlays(dst, cx, cy)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

// renderHUD draws the title, player, turns and clock.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightCyan)

	player := fmt.Sprintf("Player: %s", g.ctrl.Player())
	dst.DrawTextColor(boardX, 1, player, core.ColorWhite)

	turns := fmt.Sprintf("Turns: %d", g.ctrl.Turns())
	if limit := g.ctrl.Budget().TurnLimit; limit > 0 {
		turns = fmt.Sprintf("Turns: %d/%d", g.ctrl.Turns(), limit)
	}
	stats := fmt.Sprintf("%s  Time: %s", turns, g.ctrl.Display())
	statsX := max(boardX+boardW-utf8.RuneCountInString(stats), boardX)
	dst.DrawTextColor(statsX, 1, stats, g.statsColor())

	if g.status != "" {
		dst.DrawTextCentered(2, g.status, core.ColorGold)
	}
}

// statsColor turns the stats line red when a budget is nearly spent.
func (g *Game) statsColor() core.Color {
	b := g.ctrl.Budget()
	if b.TurnLimit > 0 && b.TurnLimit-g.ctrl.Turns() <= 3 {
		return core.ColorBrightRed
	}
	if rem := b.Remaining(g.ctrl.Elapsed()); rem >= 0 && rem <= 10 {
		return core.ColorBrightRed
	}
	return core.ColorWhite
}

// renderBoard draws every card as a small box.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for i, card := range g.ctrl.Deck() {
		r := g.grid.Cell(i, boardX, boardY)

		var border, face core.Color
		label := string(card.Face)
		switch card.State {
		case StateMatched:
			border, face = core.ColorGreen, core.ColorBrightGreen
		case StateRevealed:
			border, face = core.ColorYellow, core.ColorBrightWhite
		default:
			border, face = core.ColorGray, core.ColorSilver
			label = hiddenFace
		}
		if i == g.cursor && !g.ctrl.Outcome().Terminal() {
			border = core.ColorBrightCyan
		}

		dst.DrawBox(r, border)
		labelX := r.X + (r.W-utf8.RuneCountInString(label))/2
		dst.DrawTextColor(labelX, r.Y+1, label, face)
	}
}

// renderFooter draws the instruction line and control hints.
func (g *Game) renderFooter(dst *core.Screen) {
	if g.cfg.Text.Instruction != "" {
		dst.DrawTextCentered(g.screenH-2, g.cfg.Text.Instruction, core.ColorGray)
	}
	dst.DrawTextCentered(g.screenH-1, g.Controls(), core.ColorGray)
}

// renderOverlays draws the win or lose banner.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	res, ok := g.ctrl.Result()
	if !ok || !g.announced {
		return
	}
	summary := fmt.Sprintf("Turns: %d  Time: %s", res.Turns, res.Time)

	if res.Won {
		g.drawOverlay(dst, centerX, centerY, core.ColorGold,
			g.cfg.Text.WinMessage, summary, "Press R to play again, Tab for scores")
		return
	}

	lines := []string{"GAME OVER", summary}
	if g.cfg.Text.LoseAction != "" {
		lines = append(lines, g.cfg.Text.LoseAction)
	}
	if g.cfg.Text.LoseURL != "" {
		lines = append(lines, g.cfg.Text.LoseURL)
	}
	lines = append(lines, "Press R to try again, Tab for scores")
	g.drawOverlay(dst, centerX, centerY, core.ColorBrightRed, lines...)
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColor(x, box.Y+1+i, line, c)
	}
}
