package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - move piece left
	ActionRight            // D, Right arrow - move piece right
	ActionRotateCW         // W, Up arrow - rotate clockwise
	ActionRotateCCW        // Q - rotate counter-clockwise
	ActionSoftDrop         // S, Down arrow - fall faster
	ActionHardDrop         // Space - drop to the bottom
	ActionPause            // P - pause/unpause
	ActionRestart          // R - restart after game over
	ActionQuit             // Esc, Ctrl+C - exit
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
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionHardDrop:
		return "HardDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input for one simulation frame.
type InputFrame struct {
	// Actions counts the presses of each action this frame.
	Actions map[Action]int

	// Released holds held actions that ended this frame.
	Released map[Action]bool

	// Now is the clock reading for this frame. Zero means the game should
	// advance its own fixed-step clock.
	Now time.Time
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions:  make(map[Action]int),
		Released: make(map[Action]bool),
	}
}

// Set records one press of an action for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a] > 0
}

// Count returns how many times the action was pressed this frame.
func (f InputFrame) Count(a Action) int {
	return f.Actions[a]
}

// Release marks a held action as ended for this frame.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
}

// HasReleased returns true if the given action was released this frame.
func (f InputFrame) HasReleased(a Action) bool {
	return f.Released[a]
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Released)
	f.Now = time.Time{}
}

// Empty reports whether nothing was pressed or released.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Released) == 0
}
