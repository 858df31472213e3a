package editor

import (
	"image"
	"slices"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/hittest"
	"github.com/matzehuels/blockcanvas/pkg/render"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// Editor is the editor state. The zero value is not usable; create one with
// New.
type Editor struct {
	blocks   []block.Block
	state    State
	activeID string
	tool     Tool
	gesture  gesture
	editSeq  uint64
	cfg      *config
}

// gesture holds the transient data of the pointer gesture in progress.
// It is reset whenever the editor returns to Idle.
type gesture struct {
	hit    hittest.Hit
	offset geom.Point // pointer minus box origin, for Moving
	start  geom.Point // pointer-down position
}

// Effects tells the host what a transition requires of it.
type Effects struct {
	// Cursor is the pointer affordance to display.
	Cursor hittest.Cursor
	// Edit is set when the transition entered EditingText.
	Edit *EditRequest
	// Changed reports whether the block sequence was modified.
	Changed bool
	// Ignored reports that the event had no meaning in the current state.
	Ignored bool
	// Err is a recoverable failure that did not prevent the transition.
	Err error
}

// EditRequest asks the host to show a text-edit overlay.
type EditRequest struct {
	BlockID     string
	ScreenX     float64
	ScreenY     float64
	InitialText string
	// Seq identifies this edit; see Editor.Editing.
	Seq uint64
}

// New returns an empty Editor in Idle with the select tool.
func New(opts ...Option) Editor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Editor{state: Idle, tool: SelectTool, cfg: &cfg}
}

// Blocks returns a copy of the block sequence in insertion (z) order.
func (e Editor) Blocks() []block.Block { return slices.Clone(e.blocks) }

// Len returns the number of blocks.
func (e Editor) Len() int { return len(e.blocks) }

// State returns the action state.
func (e Editor) State() State { return e.state }

// Tool returns the current tool.
func (e Editor) Tool() Tool { return e.tool }

// ActiveID returns the id of the active block, or "" when none is active.
func (e Editor) ActiveID() string { return e.activeID }

// Active returns the active block. A stale active id reports false.
func (e Editor) Active() (block.Block, bool) {
	i := block.Index(e.blocks, e.activeID)
	if i < 0 {
		return block.Block{}, false
	}
	return e.blocks[i], true
}

// Editing reports whether the edit identified by seq is still open.
func (e Editor) Editing(seq uint64) bool {
	return e.state == EditingText && e.editSeq == seq
}

// SetTool switches the pointer tool. A create tool for an unknown block type
// is rejected with INVALID_TOOL.
func (e Editor) SetTool(t Tool) (Editor, error) {
	if bt, ok := t.BlockType(); ok {
		if _, err := block.ParseType(string(bt)); err != nil {
			return e, errors.Wrap(errors.ErrCodeInvalidTool, err, "tool %q", t)
		}
	}
	e.tool = t
	return e, nil
}

// Load replaces the document with blocks. Every block must validate and ids
// must be unique. Boxes with negative extents are normalized. The editor
// returns to Idle with nothing selected.
func (e Editor) Load(blocks []block.Block) (Editor, error) {
	if err := block.ValidateAll(blocks); err != nil {
		return e, err
	}
	e.blocks = slices.Clone(blocks)
	for i := range e.blocks {
		e.blocks[i].Box = geom.NormalizeBox(e.blocks[i].Box)
	}
	e.editSeq++
	return e.deselect(), nil
}

// Reset clears the document. It is the only way blocks are removed.
func (e Editor) Reset() Editor {
	e.blocks = nil
	e.editSeq++
	return e.deselect()
}

// CursorAt returns the cursor for hovering p with the select tool.
func (e Editor) CursorAt(p geom.Point) hittest.Cursor {
	_, hit := hittest.FindBlockAt(p, e.blocks, e.cfg.order, e.cfg.tolerance)
	return hittest.CursorFor(hit)
}

// Frame returns the render input for the current state.
func (e Editor) Frame(background image.Image) render.Frame {
	return render.Frame{
		Blocks:     e.blocks,
		Background: background,
		ActiveID:   e.activeID,
		Editing:    e.state == EditingText,
	}
}

// PointerDown handles a pointer press at p. Only Idle reacts to it.
func (e Editor) PointerDown(p geom.Point) (Editor, Effects) {
	if e.state != Idle {
		return e, Effects{Ignored: true}
	}
	if bt, ok := e.tool.BlockType(); ok {
		return e.beginDraw(bt, p)
	}

	i, hit := hittest.FindBlockAt(p, e.blocks, e.cfg.order, e.cfg.tolerance)
	if i < 0 {
		return e, Effects{Cursor: hittest.CursorDefault}
	}
	e.activeID = e.blocks[i].ID
	e.gesture = gesture{hit: hit, start: p}
	if hit.IsHandle() {
		e.state = Resizing
	} else {
		e.state = Moving
		e.gesture.offset = p.Sub(e.blocks[i].Box.Origin())
	}
	return e, Effects{Cursor: hittest.CursorFor(hit)}
}

func (e Editor) beginDraw(t block.Type, p geom.Point) (Editor, Effects) {
	opts := []block.Option{block.WithStyle(e.cfg.style)}
	if e.cfg.newID != nil {
		id := e.cfg.newID()
		if block.Index(e.blocks, id) >= 0 {
			return e, Effects{Err: errors.New(errors.ErrCodeDuplicateID, "duplicate block id %q", id)}
		}
		opts = append(opts, block.WithID(id))
	}
	b, err := block.New(t, p, e.cfg.initialSize, opts...)
	if err != nil {
		return e, Effects{Err: err}
	}

	e.blocks = append(slices.Clone(e.blocks), b)
	e.activeID = b.ID
	e.state = Drawing
	e.gesture = gesture{hit: hittest.BottomRight, start: p}
	return e, Effects{Cursor: hittest.CursorNWSE, Changed: true}
}

// PointerMove handles pointer motion to p. In Idle it only reports the hover
// cursor.
func (e Editor) PointerMove(p geom.Point) (Editor, Effects) {
	switch e.state {
	case Idle:
		if e.tool != SelectTool {
			return e, Effects{Cursor: hittest.CursorDefault}
		}
		return e, Effects{Cursor: e.CursorAt(p)}
	case EditingText:
		return e, Effects{Ignored: true}
	}

	i := block.Index(e.blocks, e.activeID)
	if i < 0 {
		return e.deselect(), Effects{Cursor: hittest.CursorDefault}
	}
	b := e.blocks[i]
	switch e.state {
	case Drawing, Resizing:
		c, _ := e.gesture.hit.Corner()
		b.Box = geom.ResizeBox(b.Box, c, p)
	case Moving:
		b.Box = b.Box.MoveTo(p.Sub(e.gesture.offset))
	}
	return e.replace(i, b), Effects{Cursor: hittest.CursorFor(e.gesture.hit), Changed: true}
}

// PointerUp handles a pointer release at p and ends the gesture.
func (e Editor) PointerUp(p geom.Point) (Editor, Effects) {
	switch e.state {
	case Idle, EditingText:
		return e, Effects{Ignored: true}
	}

	i := block.Index(e.blocks, e.activeID)
	if i < 0 {
		return e.deselect(), Effects{Cursor: hittest.CursorDefault}
	}
	b := e.blocks[i]
	changed := e.state != Moving

	switch e.state {
	case Drawing:
		b.Box = geom.NormalizeBox(b.Box)
		e = e.replace(i, b)
		if b.IsText() {
			return e.beginEdit(b)
		}
	case Resizing:
		b.Box = geom.NormalizeBox(b.Box)
		e = e.replace(i, b)
		if p == e.gesture.start && b.IsText() {
			return e.beginEdit(b)
		}
	}
	return e.deselect(), Effects{Cursor: hittest.CursorDefault, Changed: changed}
}

func (e Editor) beginEdit(b block.Block) (Editor, Effects) {
	e.state = EditingText
	e.gesture = gesture{}
	e.editSeq++
	return e, Effects{
		Cursor:  hittest.CursorDefault,
		Changed: true,
		Edit: &EditRequest{
			BlockID:     b.ID,
			ScreenX:     b.Box.X,
			ScreenY:     b.Box.Y,
			InitialText: b.Text,
			Seq:         e.editSeq,
		},
	}
}

// CommitText ends the text edit of block id. The text is written into the
// block and its box is shrunk to the metrics of the text at its fitted font
// size, keeping the origin. Empty text keeps the box. A measurement failure
// keeps the box and is reported in Effects.Err. A commit for a block that is
// not being edited is ignored.
func (e Editor) CommitText(id, text string, m textfit.Measurer) (Editor, Effects) {
	if e.state != EditingText || id == "" || id != e.activeID {
		return e, Effects{Ignored: true}
	}
	i := block.Index(e.blocks, id)
	if i < 0 {
		return e.deselect(), Effects{Cursor: hittest.CursorDefault}
	}

	b := e.blocks[i]
	b.Text = text
	var fx Effects
	if text != "" {
		l, err := textfit.FitBlock(b, m)
		if err != nil {
			fx.Err = err
		} else {
			b.Box.Width, b.Box.Height = l.Metrics.Width, l.Metrics.Ascent
		}
	}
	fx.Changed = true
	fx.Cursor = hittest.CursorDefault
	return e.replace(i, b).deselect(), fx
}

// replace returns e with blocks[i] set to b, leaving e's sequence intact.
func (e Editor) replace(i int, b block.Block) Editor {
	e.blocks = slices.Clone(e.blocks)
	e.blocks[i] = b
	return e
}

func (e Editor) deselect() Editor {
	e.state = Idle
	e.activeID = ""
	e.gesture = gesture{}
	return e
}
