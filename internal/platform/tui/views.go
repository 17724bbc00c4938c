package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("117"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)
	winStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))
	loseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
	linkStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("117"))
	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// viewStart renders the name field, the mode picker and the leaderboard.
func (m Model) viewStart() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("P A I R S"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(m.opts.Settings.Text.Instruction))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Name  "))
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Mode  "))
	for i, g := range m.modes {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == m.modeIdx {
			b.WriteString(buttonStyle.Padding(0, 1).Render(g.Title))
		} else {
			b.WriteString(dimStyle.Render(g.Title))
		}
	}
	if len(m.modes) > 0 {
		b.WriteString("\n      ")
		b.WriteString(dimStyle.Render(m.modes[m.modeIdx].Description))
	}
	b.WriteString("\n\n")

	if strings.TrimSpace(m.nameInput.Value()) == "" {
		b.WriteString(disabledButtonStyle.Render("Start"))
	} else {
		b.WriteString(buttonStyle.Render("Start"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewToast())
	b.WriteString(m.viewLeaderboard())
	b.WriteString("\n")
	b.WriteString(m.help.View(startKeys{m.keys}))

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// viewResults renders the outcome of the last run and the leaderboard.
func (m Model) viewResults() string {
	var b strings.Builder
	text := m.opts.Settings.Text

	b.WriteString("\n")
	if m.hasResult {
		res := m.result
		if res.Won {
			b.WriteString(winStyle.Render(text.WinMessage))
		} else {
			b.WriteString(loseStyle.Render("GAME OVER"))
		}
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("Player: %s  Turns: %d  Time: %s",
			res.Player, res.Turns, res.Time)))
		b.WriteString("\n")

		if !res.Won {
			if text.LoseAction != "" {
				b.WriteString("\n")
				b.WriteString(labelStyle.Render(text.LoseAction))
			}
			if text.LoseURL != "" {
				b.WriteString("\n")
				b.WriteString(linkStyle.Render(text.LoseURL))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(m.viewToast())
	b.WriteString(m.viewLeaderboard())
	b.WriteString("\n")
	b.WriteString(m.help.View(resultKeys{m.keys}))

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// viewLeaderboard renders the top-N panel.
func (m Model) viewLeaderboard() string {
	title := fmt.Sprintf("Top %d", m.opts.Settings.Leaderboard.Top)

	var body string
	switch {
	case m.board() == nil:
		body = dimStyle.Render("Leaderboard unavailable")
	case m.boardLoading && len(m.entries) == 0:
		body = dimStyle.Render("Loading...")
	case len(m.entries) == 0:
		body = dimStyle.Render("No scores yet")
	default:
		body = m.table.View()
	}

	return panelStyle.Render(labelStyle.Render(title)+"\n"+body) + "\n"
}

// viewToast renders the status toast line, or a blank line without one.
func (m Model) viewToast() string {
	if m.toast == "" {
		return "\n"
	}
	return toastStyle.Render(m.toast) + "\n"
}
