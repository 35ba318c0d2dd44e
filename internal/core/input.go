package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W - move up
	ActionDown             // S - move down
	ActionLeft             // A - move left
	ActionRight            // D - move right
	ActionFire             // Space, mouse click - fire pulse
	ActionAimUp            // Up arrow - nudge aim point
	ActionAimDown          // Down arrow
	ActionAimLeft          // Left arrow
	ActionAimRight         // Right arrow
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B - go back to menu
	ActionRestart          // R key - restart game after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionAimUp:
		return "AimUp"
	case ActionAimDown:
		return "AimDown"
	case ActionAimLeft:
		return "AimLeft"
	case ActionAimRight:
		return "AimRight"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one simulation tick.
// Actions are discrete presses; the pointer is sampled and only its latest
// position matters.
type InputFrame struct {
	Actions map[Action]bool

	// Pointer position in screen cells, valid when HasPointer is set.
	PointerX, PointerY int
	HasPointer         bool

	// Wall time since the previous step. Zero means one nominal tick.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records the latest pointer position.
func (f *InputFrame) SetPointer(x, y int) {
	f.PointerX = x
	f.PointerY = y
	f.HasPointer = true
}

// Clear resets all actions for the next frame. The pointer position is
// kept but only reported again once it moves.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.HasPointer = false
	f.Elapsed = 0
}
