package editor

// Event names an input of the state machine.
type Event string

const (
	EventPointerDown Event = "pointerDown"
	EventPointerMove Event = "pointerMove"
	EventPointerUp   Event = "pointerUp"
	EventCommit      Event = "commit"
)

// Transition is one row of the transition table.
type Transition struct {
	From   State
	Event  Event
	Guard  string // empty when unconditional
	To     State
	Action string
}

var transitions = []Transition{
	{Idle, EventPointerDown, "create tool", Drawing, "create block at pointer"},
	{Idle, EventPointerDown, "select tool, handle hit", Resizing, "record active block and handle"},
	{Idle, EventPointerDown, "select tool, inside hit", Moving, "record active block and offset"},
	{Idle, EventPointerDown, "select tool, no hit", Idle, ""},
	{Idle, EventPointerMove, "", Idle, "report hover cursor"},
	{Drawing, EventPointerMove, "", Drawing, "drag bottom-right corner"},
	{Drawing, EventPointerUp, "text block", EditingText, "normalize box"},
	{Drawing, EventPointerUp, "other block", Idle, "normalize box, deselect"},
	{Moving, EventPointerMove, "", Moving, "move box to pointer minus offset"},
	{Moving, EventPointerUp, "", Idle, "deselect"},
	{Resizing, EventPointerMove, "", Resizing, "resize box at handle"},
	{Resizing, EventPointerUp, "no drag, text block", EditingText, "normalize box"},
	{Resizing, EventPointerUp, "otherwise", Idle, "normalize box, deselect"},
	{EditingText, EventCommit, "", Idle, "write text, fit box, deselect"},
}

// Transitions returns the transition table. Events not listed for a state
// are ignored in that state.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}
