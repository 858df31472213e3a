package scene

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

// Document is a canvas and its blocks.
type Document struct {
	Canvas Canvas      `toml:"canvas"`
	Blocks []BlockSpec `toml:"blocks"`
}

// Canvas is the authored canvas size and optional background image path.
type Canvas struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Background string  `toml:"background,omitempty"`
}

// BlockSpec is the flat TOML form of a block.
type BlockSpec struct {
	ID            string  `toml:"id,omitempty"`
	Type          string  `toml:"type,omitempty"`
	X             float64 `toml:"x"`
	Y             float64 `toml:"y"`
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	Text          string  `toml:"text,omitempty"`
	FontSize      float64 `toml:"font_size,omitempty"`
	FontFamily    string  `toml:"font_family,omitempty"`
	Color         string  `toml:"color,omitempty"`
	Align         string  `toml:"align,omitempty"`
	VerticalAlign string  `toml:"vertical_align,omitempty"`
}

// Size returns the canvas dimensions.
func (d *Document) Size() geom.Dimensions {
	return geom.Dimensions{Width: d.Canvas.Width, Height: d.Canvas.Height}
}

// Validate checks the canvas size and every block.
func (d *Document) Validate() error {
	if err := errors.ValidateDimensions(d.Canvas.Width, d.Canvas.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "canvas")
	}
	if _, err := d.ToBlocks(); err != nil {
		return err
	}
	return nil
}

// ToBlocks converts the specs to blocks, filling in defaults and
// normalizing negative extents. It fails with INVALID_SCENE
// wrapping the first block error.
func (d *Document) ToBlocks() ([]block.Block, error) {
	taken := make(map[string]bool, len(d.Blocks))
	for _, s := range d.Blocks {
		if s.ID != "" {
			taken[s.ID] = true
		}
	}
	// block-N names the block's position, moving on to the next free
	// number when an explicit id already holds it.
	freeID := func(n int) string {
		for ; ; n++ {
			id := fmt.Sprintf("block-%d", n)
			if !taken[id] {
				taken[id] = true
				return id
			}
		}
	}

	out := make([]block.Block, len(d.Blocks))
	for i, s := range d.Blocks {
		b := s.toBlock()
		if b.ID == "" {
			b.ID = freeID(i + 1)
		}
		if err := b.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "block %d (%s)", i+1, b.ID)
		}
		out[i] = b
	}
	if err := block.ValidateAll(out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "blocks")
	}
	return out, nil
}

func (s BlockSpec) toBlock() block.Block {
	style := block.DefaultStyle()
	if s.FontSize != 0 {
		style.FontSize = s.FontSize
	}
	if s.FontFamily != "" {
		style.FontFamily = s.FontFamily
	}
	if s.Color != "" {
		style.Color = s.Color
	}
	if s.Align != "" {
		style.Align = block.HorizontalAlign(s.Align)
	}
	if s.VerticalAlign != "" {
		style.VerticalAlign = block.VerticalAlign(s.VerticalAlign)
	}

	b := block.Block{
		ID:    s.ID,
		Type:  block.Type(s.Type),
		Box:   geom.NormalizeBox(geom.Box{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}),
		Text:  s.Text,
		Style: style,
	}
	if b.Type == "" {
		b.Type = block.Text
	}
	return b
}

// FromBlocks builds a document for blocks on a canvas of the given size.
func FromBlocks(size geom.Dimensions, background string, blocks []block.Block) *Document {
	d := &Document{
		Canvas: Canvas{Width: size.Width, Height: size.Height, Background: background},
		Blocks: make([]BlockSpec, len(blocks)),
	}
	for i, b := range blocks {
		d.Blocks[i] = BlockSpec{
			ID:            b.ID,
			Type:          string(b.Type),
			X:             b.Box.X,
			Y:             b.Box.Y,
			Width:         b.Box.Width,
			Height:        b.Box.Height,
			Text:          b.Text,
			FontSize:      b.Style.FontSize,
			FontFamily:    b.Style.FontFamily,
			Color:         b.Style.Color,
			Align:         string(b.Style.Align),
			VerticalAlign: string(b.Style.VerticalAlign),
		}
	}
	return d
}

// Read decodes and validates a scene from r.
func Read(r io.Reader) (*Document, error) {
	var d Document
	if err := decode(r, &d); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads a scene file.
func Load(path string) (*Document, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Write encodes d as TOML.
func Write(d *Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return nil
}

// Save writes d to path.
func Save(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// BackgroundPath resolves the background image path against the directory of
// the scene file. It returns "" when the scene has no background.
func (d *Document) BackgroundPath(scenePath string) string {
	bg := d.Canvas.Background
	if bg == "" || filepath.IsAbs(bg) {
		return bg
	}
	return filepath.Join(filepath.Dir(scenePath), bg)
}

func decode(r io.Reader, v any) error {
	md, err := toml.NewDecoder(r).Decode(v)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidScene, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
