package render

import (
	stderrors "errors"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/observability"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// Frame is the read-only input of one render pass.
type Frame struct {
	Blocks     []block.Block
	Background image.Image

	// ActiveID is the selected block, if any.
	ActiveID string
	// Editing is true while ActiveID is being text-edited; that block is
	// hidden from the pass.
	Editing bool
}

// Hidden reports whether b is left out of the pass.
func (f Frame) Hidden(b block.Block) bool {
	return f.Editing && f.ActiveID != "" && b.ID == f.ActiveID
}

// Skipped is a block the pass could not draw.
type Skipped struct {
	BlockID string
	Err     error
}

// Result summarizes a render pass.
type Result struct {
	Drawn         int
	Skipped       []Skipped
	BackgroundErr error
}

// Err joins every failure of the pass, or returns nil.
func (r Result) Err() error {
	errs := make([]error, 0, len(r.Skipped)+1)
	if r.BackgroundErr != nil {
		errs = append(errs, r.BackgroundErr)
	}
	for _, s := range r.Skipped {
		errs = append(errs, s.Err)
	}
	return stderrors.Join(errs...)
}

// Option configures a render pass.
type Option func(*renderer)

type renderer struct {
	logger  *log.Logger
	outline string
}

// WithLogger logs skipped blocks to l.
func WithLogger(l *log.Logger) Option {
	return func(r *renderer) { r.logger = l }
}

// WithSelectionOutline strokes the active block's box in color when it is
// selected but not being edited.
func WithSelectionOutline(color string) Option {
	return func(r *renderer) { r.outline = color }
}

// Render clears s and draws the background and blocks of f.
func Render(s Surface, f Frame, opts ...Option) Result {
	r := renderer{}
	for _, opt := range opts {
		opt(&r)
	}
	start := time.Now()

	size := s.Size()
	full := geom.Box{Width: size.Width, Height: size.Height}
	s.ClearRect(full)

	var res Result
	if f.Background != nil {
		if err := s.DrawImage(f.Background, full); err != nil {
			res.BackgroundErr = errors.Wrap(errors.ErrCodeDrawFailed, err, "draw background")
			r.warn("background not drawn", "err", err)
		}
	}

	for _, b := range f.Blocks {
		if f.Hidden(b) {
			continue
		}
		if err := r.drawBlock(s, b); err != nil {
			res.Skipped = append(res.Skipped, Skipped{BlockID: b.ID, Err: err})
			observability.Render().OnBlockSkipped(b.ID, err)
			r.warn("block skipped", "id", b.ID, "err", err)
			continue
		}
		res.Drawn++
		if r.outline != "" && !f.Editing && b.ID == f.ActiveID {
			if err := s.StrokeRect(geom.NormalizeBox(b.Box), r.outline); err != nil {
				r.warn("selection outline not drawn", "id", b.ID, "err", err)
			}
		}
	}

	observability.Render().OnRenderComplete(res.Drawn, len(res.Skipped), time.Since(start))
	return res
}

func (r *renderer) drawBlock(s Surface, b block.Block) error {
	switch b.Type {
	case block.Text:
		return drawText(s, b)
	default:
		return errors.New(errors.ErrCodeInvalidBlockType, "unknown block type %q", b.Type)
	}
}

func drawText(s Surface, b block.Block) error {
	l, err := textfit.FitBlock(b, s)
	if err != nil {
		return err
	}
	if b.Text == "" {
		return nil
	}
	if err := s.DrawText(b.Text, l.X, l.Y, l.Baseline, b.Style.Color, l.Font(b.Style.FontFamily)); err != nil {
		return errors.Wrap(errors.ErrCodeDrawFailed, err, "draw block %s", b.ID)
	}
	return nil
}

func (r *renderer) warn(msg string, keyvals ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, keyvals...)
	}
}
