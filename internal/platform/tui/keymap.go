package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-vortex/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true

	case "w":
		return core.ActionUp, false
	case "s":
		return core.ActionDown, false
	case "a":
		return core.ActionLeft, false
	case "d":
		return core.ActionRight, false

	case "up":
		return core.ActionAimUp, false
	case "down":
		return core.ActionAimDown, false
	case "left":
		return core.ActionAimLeft, false
	case "right":
		return core.ActionAimRight, false

	case " ":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionConfirm:
		// Enter starts a match from the menu and game over screens.
		frame.Set(core.ActionRestart)
	default:
		frame.Set(action)
	}
	return isQuit
}

// MapMouse records the pointer position and turns a left click into a
// fire pulse.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, frame *core.InputFrame) {
	frame.SetPointer(msg.X, msg.Y)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		frame.Set(core.ActionFire)
	}
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
	MenuActionScoreboard
	MenuActionOptions
	MenuActionSave
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
	case "tab":
		return MenuActionScoreboard
	case "o":
		return MenuActionOptions
	case "ctrl+s":
		return MenuActionSave
	}

	return MenuActionNone
}
