package core

// Action is a semantic command, abstracted from physical keys and clicks.
// Frontends resolve keys and pointer hits into actions; the simulation
// only ever sees actions.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - rotate aim towards the left wall
	ActionRight          // Right arrow, D - rotate aim towards the right wall
	ActionLaunch         // Space - release a volley
	ActionConfirm        // Enter - start from the menu, retry from the loss screen
	ActionPause          // P, Escape - pause or resume
	ActionBack           // B - give up while paused
	ActionUp             // Up arrow, W - menu navigation
	ActionDown           // Down arrow, S - menu navigation
	ActionQuit           // Q, Ctrl+C - leave the session
	actionCount
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionLaunch:  "Launch",
	ActionConfirm: "Confirm",
	ActionPause:   "Pause",
	ActionBack:    "Back",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << uint(a)
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return f.bits&(1<<uint(a)) != 0
}

// Empty reports whether no action is set.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}
