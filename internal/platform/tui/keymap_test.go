package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-vortex/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w thrusts up", runeKey("w"), core.ActionUp, false},
		{"a thrusts left", runeKey("a"), core.ActionLeft, false},
		{"s thrusts down", runeKey("s"), core.ActionDown, false},
		{"d thrusts right", runeKey("d"), core.ActionRight, false},
		{"up arrow aims", tea.KeyMsg{Type: tea.KeyUp}, core.ActionAimUp, false},
		{"left arrow aims", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionAimLeft, false},
		{"space fires", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFire, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"b goes back", runeKey("b"), core.ActionBack, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound key", runeKey("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrameEnterRestarts(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEnter}, &frame)
	if !frame.Has(core.ActionRestart) || frame.Has(core.ActionConfirm) {
		t.Errorf("enter set %v, expected Restart", frame.Actions)
	}

	if quit := km.MapKeyToFrame(runeKey("q"), &frame); !quit {
		t.Error("MapKeyToFrame(q) should report quit")
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouse(tea.MouseMsg{X: 12, Y: 5, Action: tea.MouseActionMotion}, &frame)
	if !frame.HasPointer || frame.PointerX != 12 || frame.PointerY != 5 {
		t.Errorf("pointer = (%d, %d, %v), expected (12, 5, true)", frame.PointerX, frame.PointerY, frame.HasPointer)
	}
	if frame.Has(core.ActionFire) {
		t.Error("motion should not fire")
	}

	km.MapMouse(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Has(core.ActionFire) {
		t.Error("left click should fire")
	}

	frame.Clear()
	km.MapMouse(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	if frame.Has(core.ActionFire) {
		t.Error("right click should not fire")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{runeKey("h"), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("o"), MenuActionOptions},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}
