package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runes("w"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"s", runes("s"), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runes("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runes("d"), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"b", runes("b"), core.ActionBack, false},
		{"r", runes("r"), core.ActionRestart, false},
		{"q", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("x"), core.ActionNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runes("d"), &frame) {
		t.Error("d reported as quit")
	}
	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace}, &frame) {
		t.Error("space reported as quit")
	}
	if !frame.Has(core.ActionRight) || !frame.Has(core.ActionConfirm) {
		t.Errorf("frame missing actions: %v", frame.Actions)
	}

	if !km.MapKeyToFrame(runes("q"), &frame) {
		t.Error("q not reported as quit")
	}
}
