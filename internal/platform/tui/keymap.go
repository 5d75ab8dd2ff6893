package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lumines/internal/core"
)

// GameKeys holds the in-game key bindings. It implements help.KeyMap so
// the same bindings drive both input mapping and the help bar.
type GameKeys struct {
	Rotate     key.Binding
	Left       key.Binding
	Right      key.Binding
	Down       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultGameKeys returns the arrow/WASD layout.
func DefaultGameKeys() GameKeys {
	return GameKeys{
		Rotate:     key.NewBinding(key.WithKeys("up", "w", " "), key.WithHelp("↑/w", "rotate")),
		Left:       key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Down:       key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "drop")),
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k GameKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Rotate, k.Left, k.Right, k.Down, k.Pause, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Rotate, k.Left, k.Right, k.Down},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeys
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeys()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() GameKeys {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Rotate):
		return core.ActionRotate, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
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

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
