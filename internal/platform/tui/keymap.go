package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyraid/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ":
		return core.ActionFire, false
	case "enter":
		return core.ActionStart, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "esc", "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// Apply routes a key to the frame: held actions go through the hold
// tracker, discrete ones are set directly.
// Returns true if the key was a quit request.
func (km *KeyMapper) Apply(msg tea.KeyMsg, hold *core.HoldTracker, frame *core.InputFrame, now time.Time) bool {
	action, isQuit := km.MapKey(msg)
	switch {
	case isQuit:
		return true
	case action == core.ActionNone:
	case action.IsHeld():
		hold.Press(action, now)
	default:
		frame.Set(action)
	}
	return false
}
