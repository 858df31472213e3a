package block

import (
	"github.com/google/uuid"

	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

// Type tags the kind of a block.
type Type string

// Text is the only block type currently supported.
const Text Type = "text"

// Types lists every known block type.
var Types = []Type{Text}

// ParseType converts s to a known Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidBlockType, "unknown block type %q", s)
}

// Block is an atomic visual unit on the canvas.
type Block struct {
	ID    string   `json:"id"`
	Type  Type     `json:"type"`
	Box   geom.Box `json:"boundingBox"`
	Text  string   `json:"text"`
	Style Style    `json:"style"`
}

// IsText reports whether the block carries editable text.
func (b Block) IsText() bool { return b.Type == Text }

// Validate checks the type tag and style of the block.
func (b Block) Validate() error {
	if b.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "block id cannot be empty")
	}
	if _, err := ParseType(string(b.Type)); err != nil {
		return err
	}
	if err := b.Style.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "block %s", b.ID)
	}
	return nil
}

// Option configures a block created by New.
type Option func(*Block)

// WithID sets the block id instead of generating one.
func WithID(id string) Option {
	return func(b *Block) { b.ID = id }
}

// WithStyle replaces the default style.
func WithStyle(s Style) Option {
	return func(b *Block) { b.Style = s }
}

// WithText sets the initial text content.
func WithText(text string) Option {
	return func(b *Block) { b.Text = text }
}

// New creates a block of type t with its box at origin and the given size.
// Text blocks start with empty text and DefaultStyle. An unknown type is a
// construction error.
func New(t Type, origin geom.Point, size geom.Dimensions, opts ...Option) (Block, error) {
	if _, err := ParseType(string(t)); err != nil {
		return Block{}, err
	}
	b := Block{
		ID:    uuid.NewString(),
		Type:  t,
		Box:   geom.Box{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height},
		Style: DefaultStyle(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	if err := b.Validate(); err != nil {
		return Block{}, err
	}
	return b, nil
}

// Index returns the position of the block with the given id, or -1.
func Index(blocks []Block, id string) int {
	if id == "" {
		return -1
	}
	for i := range blocks {
		if blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// ValidateAll validates every block and checks that ids are unique.
func ValidateAll(blocks []Block) error {
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if err := b.Validate(); err != nil {
			return err
		}
		if seen[b.ID] {
			return errors.New(errors.ErrCodeDuplicateID, "duplicate block id %q", b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}
