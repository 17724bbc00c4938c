package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case " ", "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// AppKeyMap defines the key bindings of the start and results screens.
type AppKeyMap struct {
	Start    key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Up       key.Binding
	Down     key.Binding
	Scores   key.Binding
	Replay   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// DefaultAppKeyMap returns default key bindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Replay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "play again"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// startKeys is the help view of the start screen. Letters go to the name
// field there, so only ctrl+c and esc quit.
type startKeys struct{ AppKeyMap }

// ShortHelp returns key bindings for the short help view.
func (k startKeys) ShortHelp() []key.Binding {
	quit := key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit"))
	return []key.Binding{k.Start, k.NextMode, k.PrevMode, quit}
}

// FullHelp returns key bindings for the full help view.
func (k startKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// resultKeys is the help view of the results screen.
type resultKeys struct{ AppKeyMap }

// ShortHelp returns key bindings for the short help view.
func (k resultKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Replay, k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k resultKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Replay, k.Up, k.Down},
		{k.Back, k.Quit},
	}
}
