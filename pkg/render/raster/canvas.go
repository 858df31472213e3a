package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// Canvas is a raster rendering surface. It is not safe for concurrent use.
type Canvas struct {
	img      *image.RGBA
	fonts    *FontCache
	fallback string
}

// Option configures a Canvas.
type Option func(*Canvas) error

// WithFontCache shares a font cache between canvases.
func WithFontCache(fc *FontCache) Option {
	return func(c *Canvas) error {
		c.fonts = fc
		return nil
	}
}

// WithFont registers an additional font family.
func WithFont(family string, ttf []byte) Option {
	return func(c *Canvas) error { return c.fonts.Register(family, ttf) }
}

// WithFallbackFamily substitutes family for any font family that is not
// registered, instead of failing the measurement.
func WithFallbackFamily(family string) Option {
	return func(c *Canvas) error {
		c.fallback = family
		return nil
	}
}

// New creates a transparent canvas of the given pixel size.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if err := errors.ValidateDimensions(float64(width), float64(height)); err != nil {
		return nil, err
	}
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	// Options run in order, so a shared cache must come before WithFont.
	c.fonts = NewFontCache()
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.fallback != "" && !c.fonts.Has(c.fallback) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fallback font family %q not loaded", c.fallback)
	}
	return c, nil
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return png.Encode(w, c.img) }

func (c *Canvas) Size() geom.Dimensions {
	b := c.img.Bounds()
	return geom.Dimensions{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *Canvas) ClearRect(r geom.Box) {
	xdraw.Draw(c.img, rect(r), image.Transparent, image.Point{}, xdraw.Src)
}

func (c *Canvas) DrawImage(src image.Image, dst geom.Box) error {
	if src == nil {
		return errors.New(errors.ErrCodeDrawFailed, "no image")
	}
	xdraw.CatmullRom.Scale(c.img, rect(dst), src, src.Bounds(), xdraw.Over, nil)
	return nil
}

func (c *Canvas) MeasureText(text string, spec textfit.FontSpec) (textfit.Metrics, error) {
	face, err := c.face(spec)
	if err != nil {
		return textfit.Metrics{}, err
	}
	if text == "" {
		return textfit.Metrics{}, nil
	}
	bounds, advance := font.BoundString(face, text)
	return textfit.Metrics{
		Width:  fromFixed(advance),
		Ascent: math.Max(0, -fromFixed(bounds.Min.Y)),
	}, nil
}

func (c *Canvas) DrawText(text string, x, y float64, baseline textfit.Baseline, hex string, spec textfit.FontSpec) error {
	col, err := ParseColor(hex)
	if err != nil {
		return err
	}
	face, err := c.face(spec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDrawFailed, err, "draw %q", text)
	}

	m := face.Metrics()
	switch baseline {
	case textfit.BaselineHanging:
		top := m.CapHeight
		if top <= 0 {
			top = m.Ascent
		}
		y += fromFixed(top)
	case textfit.BaselineBottom:
		y -= fromFixed(m.Descent)
	}

	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
	return nil
}

func (c *Canvas) StrokeRect(r geom.Box, hex string) error {
	col, err := ParseColor(hex)
	if err != nil {
		return err
	}
	src := image.NewUniform(col)
	o := rect(geom.NormalizeBox(r))
	edges := []image.Rectangle{
		image.Rect(o.Min.X, o.Min.Y, o.Max.X, o.Min.Y+1),
		image.Rect(o.Min.X, o.Max.Y-1, o.Max.X, o.Max.Y),
		image.Rect(o.Min.X, o.Min.Y, o.Min.X+1, o.Max.Y),
		image.Rect(o.Max.X-1, o.Min.Y, o.Max.X, o.Max.Y),
	}
	for _, e := range edges {
		xdraw.Draw(c.img, e, src, image.Point{}, xdraw.Over)
	}
	return nil
}

func (c *Canvas) face(spec textfit.FontSpec) (font.Face, error) {
	family := spec.Family
	if c.fallback != "" && !c.fonts.Has(family) {
		family = c.fallback
	}
	return c.fonts.Face(family, spec.Size)
}

// ParseColor parses a CSS hex colour (#rgb or #rrggbb).
func ParseColor(hex string) (color.Color, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "colour %q", hex)
	}
	return col, nil
}

func rect(b geom.Box) image.Rectangle {
	b = geom.NormalizeBox(b)
	return image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.Right())), int(math.Ceil(b.Bottom())),
	)
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
