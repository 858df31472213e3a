package render

import (
	"image"

	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// Surface is the drawing capability a host provides. Coordinates are canvas
// pixels with the origin at the top-left corner.
type Surface interface {
	textfit.Measurer

	// Size returns the drawable extent of the surface.
	Size() geom.Dimensions

	// ClearRect resets the region to transparent.
	ClearRect(r geom.Box)

	// DrawImage draws img scaled into dst.
	DrawImage(img image.Image, dst geom.Box) error

	// DrawText draws a single line of text with its baseline of the given
	// kind at (x, y).
	DrawText(text string, x, y float64, baseline textfit.Baseline, color string, font textfit.FontSpec) error

	// StrokeRect outlines r with a one pixel line.
	StrokeRect(r geom.Box, color string) error
}
