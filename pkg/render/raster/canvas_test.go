package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/render"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

func newCanvas(t *testing.T, w, h int, opts ...Option) *Canvas {
	t.Helper()
	c, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRejectsBadSize(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, errors.ErrCodeInvalidDimensions) {
		t.Errorf("New(0, 10) error = %v, want INVALID_DIMENSIONS", err)
	}
}

func TestMeasureText(t *testing.T) {
	c := newCanvas(t, 10, 10)

	m, err := c.MeasureText("Hello", textfit.FontSpec{Size: 24, Family: "Go"})
	if err != nil {
		t.Fatalf("MeasureText() error = %v", err)
	}
	if m.Width <= 0 || m.Ascent <= 0 || m.Ascent >= 24 {
		t.Errorf("MeasureText() = %+v, want positive width and ascent below the em", m)
	}

	empty, err := c.MeasureText("", textfit.FontSpec{Size: 24, Family: "Go"})
	if err != nil || empty != (textfit.Metrics{}) {
		t.Errorf("MeasureText(\"\") = %+v, %v", empty, err)
	}
}

func TestMeasureTextMonotonic(t *testing.T) {
	c := newCanvas(t, 10, 10)
	var prev textfit.Metrics
	for size := 1.0; size <= 64; size++ {
		m, err := c.MeasureText("Certificate of Completion", textfit.FontSpec{Size: size, Family: "Go"})
		if err != nil {
			t.Fatal(err)
		}
		if m.Width < prev.Width || m.Ascent < prev.Ascent {
			t.Fatalf("metrics shrank at %gpx: %+v after %+v", size, m, prev)
		}
		prev = m
	}
}

func TestFontFamilies(t *testing.T) {
	c := newCanvas(t, 10, 10)
	for _, family := range []string{"Go", "Go Bold", "Go Italic", "Go Mono", "sans-serif", "monospace"} {
		if _, err := c.MeasureText("x", textfit.FontSpec{Size: 12, Family: family}); err != nil {
			t.Errorf("MeasureText(%q) error = %v", family, err)
		}
	}

	_, err := c.MeasureText("x", textfit.FontSpec{Size: 12, Family: "Comic Sans"})
	if !errors.Is(err, errors.ErrCodeMeasureFailed) {
		t.Errorf("unknown family error = %v, want MEASURE_FAILED", err)
	}

	fb := newCanvas(t, 10, 10, WithFallbackFamily("Go Mono"))
	got, err := fb.MeasureText("x", textfit.FontSpec{Size: 12, Family: "Comic Sans"})
	if err != nil {
		t.Fatalf("fallback MeasureText() error = %v", err)
	}
	want, _ := fb.MeasureText("x", textfit.FontSpec{Size: 12, Family: "Go Mono"})
	if got != want {
		t.Errorf("fallback metrics = %+v, want %+v", got, want)
	}

	if _, err := New(10, 10, WithFallbackFamily("Nope")); err == nil {
		t.Error("New() accepted an unknown fallback family")
	}
}

func TestWithFont(t *testing.T) {
	c := newCanvas(t, 10, 10, WithFont("Typewriter", gomono.TTF))
	if _, err := c.MeasureText("x", textfit.FontSpec{Size: 12, Family: "Typewriter"}); err != nil {
		t.Errorf("registered font: %v", err)
	}
	if _, err := New(10, 10, WithFont("Junk", []byte("not a font"))); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("WithFont(junk) error = %v, want INVALID_INPUT", err)
	}
}

func TestDrawText(t *testing.T) {
	c := newCanvas(t, 120, 40)
	err := c.DrawText("HI", 10, 5, textfit.BaselineHanging, "#000", textfit.FontSpec{Size: 24, Family: "Go Bold"})
	if err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}
	if !anyOpaque(c.img, image.Rect(10, 5, 60, 35)) {
		t.Error("no ink below the hanging baseline")
	}
	if anyOpaque(c.img, image.Rect(0, 0, 120, 3)) {
		t.Error("hanging text drawn above its top")
	}

	if err := c.DrawText("x", 0, 0, textfit.BaselineAlphabetic, "black", textfit.FontSpec{Size: 12, Family: "Go"}); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("bad colour error = %v, want INVALID_STYLE", err)
	}
}

func TestDrawImageAndClear(t *testing.T) {
	c := newCanvas(t, 40, 40)
	src := image.NewUniform(color.RGBA{R: 255, A: 255})
	bg := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			bg.Set(x, y, src.C)
		}
	}

	if err := c.DrawImage(bg, geom.Box{Width: 40, Height: 40}); err != nil {
		t.Fatal(err)
	}
	if got := c.img.RGBAAt(20, 20); got.R < 250 || got.A < 250 {
		t.Errorf("scaled pixel = %v, want red", got)
	}

	c.ClearRect(geom.Box{Width: 40, Height: 40})
	if got := c.img.RGBAAt(20, 20); got.A != 0 {
		t.Errorf("cleared pixel = %v, want transparent", got)
	}

	if err := c.DrawImage(nil, geom.Box{}); !errors.Is(err, errors.ErrCodeDrawFailed) {
		t.Errorf("DrawImage(nil) error = %v, want DRAW_FAILED", err)
	}
}

func TestStrokeRect(t *testing.T) {
	c := newCanvas(t, 50, 50)
	if err := c.StrokeRect(geom.Box{X: 30, Y: 30, Width: -20, Height: -20}, "#00ff00"); err != nil {
		t.Fatal(err)
	}
	if got := c.img.RGBAAt(10, 10); got.G != 255 {
		t.Errorf("corner pixel = %v, want green", got)
	}
	if got := c.img.RGBAAt(20, 20); got.A != 0 {
		t.Errorf("interior pixel = %v, want untouched", got)
	}
}

func TestRenderThroughCanvas(t *testing.T) {
	c := newCanvas(t, 300, 100)
	b := block.Block{
		ID:    "title",
		Type:  block.Text,
		Box:   geom.Box{X: 10, Y: 10, Width: 280, Height: 60},
		Text:  "Certificate",
		Style: block.DefaultStyle(),
	}
	res := render.Render(c, render.Frame{Blocks: []block.Block{b}})
	if res.Drawn != 1 || res.Err() != nil {
		t.Fatalf("Render() = %+v, %v", res, res.Err())
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 300 || !anyOpaque(c.img, image.Rect(10, 10, 290, 70)) {
		t.Error("rendered PNG has no text")
	}
}

func anyOpaque(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				return true
			}
		}
	}
	return false
}

func TestFontCacheBounded(t *testing.T) {
	fc := NewFontCache()
	first, err := fc.Face("Go", 12)
	if err != nil {
		t.Fatal(err)
	}
	again, err := fc.Face("Go", 12)
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Error("Face() did not reuse the cached face")
	}

	for i := 0; i < 3*maxFaces; i++ {
		if _, err := fc.Face("Go", 1+float64(i)/8); err != nil {
			t.Fatal(err)
		}
		if n := len(fc.faces); n > maxFaces {
			t.Fatalf("face cache holds %d faces, want at most %d", n, maxFaces)
		}
	}
}
