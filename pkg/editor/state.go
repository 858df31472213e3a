package editor

import (
	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
)

// State is the action state of the editor.
type State int

const (
	Idle State = iota
	Drawing
	Moving
	Resizing
	EditingText
)

// States lists every state in declaration order.
var States = []State{Idle, Drawing, Moving, Resizing, EditingText}

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Drawing:
		return "Drawing"
	case Moving:
		return "Moving"
	case Resizing:
		return "Resizing"
	case EditingText:
		return "EditingText"
	}
	return "State(?)"
}

// Tool is the current pointer tool: SelectTool, or a create tool named by
// the block type it creates.
type Tool string

// SelectTool selects, moves and resizes existing blocks.
const SelectTool Tool = "select"

// CreateTool returns the tool that creates blocks of type t.
func CreateTool(t block.Type) Tool { return Tool(t) }

// BlockType returns the block type a create tool creates. It reports false
// for SelectTool.
func (t Tool) BlockType() (block.Type, bool) {
	if t == SelectTool {
		return "", false
	}
	return block.Type(t), true
}

// ParseTool parses "select" or a block type name.
func ParseTool(s string) (Tool, error) {
	if Tool(s) == SelectTool {
		return SelectTool, nil
	}
	bt, err := block.ParseType(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidTool, err, "unknown tool %q", s)
	}
	return CreateTool(bt), nil
}

// ParseState parses a state name as printed by State.String.
func ParseState(s string) (State, error) {
	for _, st := range States {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown state %q", s)
}
