// Package tui provides the Bubble Tea front end for pairs.
// It handles the terminal UI loop, input mapping, the start and results
// screens, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Run identifies the game session that scheduled it, so ticks left over
// from an abandoned game are dropped.
type TickMsg struct {
	Time time.Time
	Run  int
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate, run int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Run: run}
	})
}
