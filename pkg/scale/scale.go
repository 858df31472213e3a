// Package scale remaps a block layout authored on one canvas size onto
// another.
//
// Width and height are scaled independently: the width ratio applies to
// x, width and font size; the height ratio to y and height. A layout keeps
// its relative placement on the target canvas, though text may be stretched
// when the aspect ratio changes.
package scale

import (
	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

// Ratios returns the width and height ratios from one canvas size to another.
func Ratios(from, to geom.Dimensions) (wr, hr float64, err error) {
	if err := errors.ValidateDimensions(from.Width, from.Height); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidDimensions, err, "source canvas %s", from)
	}
	if err := errors.ValidateDimensions(to.Width, to.Height); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidDimensions, err, "target canvas %s", to)
	}
	return to.Width / from.Width, to.Height / from.Height, nil
}

// Scale returns a copy of blocks remapped from one canvas size to another.
// The input is not modified.
func Scale(blocks []block.Block, from, to geom.Dimensions) ([]block.Block, error) {
	wr, hr, err := Ratios(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]block.Block, len(blocks))
	for i, b := range blocks {
		out[i] = Block(b, wr, hr)
	}
	return out, nil
}

// Block scales a single block by the given ratios.
func Block(b block.Block, wr, hr float64) block.Block {
	b.Box = geom.Box{
		X:      b.Box.X * wr,
		Y:      b.Box.Y * hr,
		Width:  b.Box.Width * wr,
		Height: b.Box.Height * hr,
	}
	b.Style.FontSize *= wr
	return b
}
