package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // W, Up arrow - move selected barrier up
	ActionDown                // S, Down arrow - move selected barrier down
	ActionLeft                // A, Left arrow - move selected barrier left
	ActionRight               // D, Right arrow - move selected barrier right
	ActionStart               // Space - release the flood
	ActionReset               // R - reload the current level
	ActionSelectNext          // Tab - cycle barrier selection
	ActionToggleShadow        // V - show or hide the shadow preview
	ActionPause               // P - pause/unpause
	ActionBack                // B, Escape - leave the game
	ActionQuit                // Q, Ctrl+C - exit game/session
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
	case ActionStart:
		return "Start"
	case ActionReset:
		return "Reset"
	case ActionSelectNext:
		return "SelectNext"
	case ActionToggleShadow:
		return "ToggleShadow"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Point is a screen position in characters.
type Point struct {
	X, Y int
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame, in the
// order they arrived, plus any pointer clicks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Order keeps arrival order so repeated moves within a frame all apply.
	Order []Action

	// Clicks holds screen positions of primary-button presses.
	Clicks []Point
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
	f.Order = append(f.Order, a)
}

// Click records a pointer press at the given screen position.
func (f *InputFrame) Click(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether nothing was pressed or clicked this frame.
func (f InputFrame) Empty() bool {
	return len(f.Order) == 0 && len(f.Clicks) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Order = f.Order[:0]
	f.Clicks = f.Clicks[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Order = append([]Action(nil), f.Order...)
	clone.Clicks = append([]Point(nil), f.Clicks...)
	return clone
}
