package core

import "strings"

// Action is a semantic input, decoupled from the physical key that
// produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Walk left
	ActionRight          // Walk right
	ActionJump           // Jump; holding it makes the jump higher
	ActionRun            // Run modifier for the walk directions
	ActionConfirm        // Confirm a menu choice
	ActionBack           // Leave to the menu
	ActionRestart        // Restart the course, or start over after game over
	ActionQuit           // Exit the program or session
	ActionPause          // Toggle pause
	ActionDebug          // Toggle the hitbox overlay

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Jump", "Run", "Confirm",
	"Back", "Restart", "Quit", "Pause", "Debug",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions active during one tick, whether pressed
// this tick or still held. The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as active.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

// Has reports whether an action is active.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.bits&(1<<a) != 0
}

// Clear removes every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Actions lists the active actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String lists the active actions, e.g. "Right+Jump".
func (f InputFrame) String() string {
	names := make([]string, 0, 4)
	for _, a := range f.Actions() {
		names = append(names, a.String())
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "+")
}
