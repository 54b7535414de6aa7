package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left (held)
	ActionRight          // D, Right arrow - move right (held)
	ActionUp             // W, Up arrow - move up (held)
	ActionDown           // S, Down arrow - move down (held)
	ActionFire           // Space - fire (held)
	ActionStart          // Enter - start from the title screen
	ActionPause          // P - pause/unpause game
	ActionRestart        // R - restart game after game over
	ActionBack           // Esc, B - go back / skip
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionFire:
		return "Fire"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsHeld reports whether the action is a continuous (held) control rather
// than a discrete event.
func (a Action) IsHeld() bool {
	switch a {
	case ActionLeft, ActionRight, ActionUp, ActionDown, ActionFire:
		return true
	default:
		return false
	}
}

// InputFrame represents the input state for a single simulation tick.
// Held actions are the snapshot of keys currently down; discrete actions
// are events that arrived since the previous tick.
type InputFrame struct {
	Actions map[Action]bool
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

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// HoldTracker reconstructs held-key state from key press events.
// Terminals deliver presses and auto-repeats but no releases, so a held
// action stays down until no press has been seen for the hold window.
type HoldTracker struct {
	window   time.Duration
	lastSeen map[Action]time.Time
}

// NewHoldTracker creates a tracker with the given hold window.
func NewHoldTracker(window time.Duration) *HoldTracker {
	return &HoldTracker{
		window:   window,
		lastSeen: make(map[Action]time.Time),
	}
}

// Press records a press (or auto-repeat) of a held action.
func (h *HoldTracker) Press(a Action, at time.Time) {
	if !a.IsHeld() {
		return
	}
	h.lastSeen[a] = at
}

// Reset forgets all held actions.
func (h *HoldTracker) Reset() {
	clear(h.lastSeen)
}

// Apply sets every action still within its hold window on the frame and
// drops the expired ones.
func (h *HoldTracker) Apply(frame *InputFrame, now time.Time) {
	for a, seen := range h.lastSeen {
		if now.Sub(seen) > h.window {
			delete(h.lastSeen, a)
			continue
		}
		frame.Set(a)
	}
}
