package render

import (
	stderrors "errors"
	"image"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/observability"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// fakeSurface records calls. Text in the "Broken" family cannot be measured.
type fakeSurface struct {
	calls   []string
	texts   []string
	images  []geom.Box
	strokes []geom.Box
	drawErr error
}

func (s *fakeSurface) MeasureText(text string, f textfit.FontSpec) (textfit.Metrics, error) {
	if f.Family == "Broken" {
		return textfit.Metrics{}, stderrors.New("font not loaded")
	}
	n := float64(utf8.RuneCountInString(text))
	return textfit.Metrics{Width: n * f.Size / 2, Ascent: f.Size * 3 / 4}, nil
}

func (s *fakeSurface) Size() geom.Dimensions { return geom.Dimensions{Width: 800, Height: 600} }

func (s *fakeSurface) ClearRect(geom.Box) { s.calls = append(s.calls, "clear") }

func (s *fakeSurface) DrawImage(_ image.Image, dst geom.Box) error {
	s.calls = append(s.calls, "image")
	s.images = append(s.images, dst)
	return nil
}

func (s *fakeSurface) DrawText(text string, _, _ float64, _ textfit.Baseline, _ string, _ textfit.FontSpec) error {
	if s.drawErr != nil {
		return s.drawErr
	}
	s.calls = append(s.calls, "text")
	s.texts = append(s.texts, text)
	return nil
}

func (s *fakeSurface) StrokeRect(r geom.Box, _ string) error {
	s.calls = append(s.calls, "stroke")
	s.strokes = append(s.strokes, r)
	return nil
}

func textBlock(id, text string) block.Block {
	return block.Block{
		ID:    id,
		Type:  block.Text,
		Box:   geom.Box{Width: 200, Height: 40},
		Text:  text,
		Style: block.DefaultStyle(),
	}
}

func TestRenderOrder(t *testing.T) {
	s := &fakeSurface{}
	bg := image.NewRGBA(image.Rect(0, 0, 4, 3))
	res := Render(s, Frame{
		Blocks:     []block.Block{textBlock("a", "one"), textBlock("b", "two")},
		Background: bg,
	})

	if res.Drawn != 2 || res.Err() != nil {
		t.Fatalf("Render() = %+v, err %v", res, res.Err())
	}
	want := []string{"clear", "image", "text", "text"}
	if len(s.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", s.calls, want)
	}
	for i := range want {
		if s.calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, s.calls[i], want[i])
		}
	}
	if s.texts[0] != "one" || s.texts[1] != "two" {
		t.Errorf("texts = %v, want sequence order", s.texts)
	}
	if want := (geom.Box{Width: 800, Height: 600}); s.images[0] != want {
		t.Errorf("background dst = %v, want %v", s.images[0], want)
	}
}

func TestRenderHidesEditedBlock(t *testing.T) {
	s := &fakeSurface{}
	res := Render(s, Frame{
		Blocks:   []block.Block{textBlock("a", "one"), textBlock("b", "two")},
		ActiveID: "a",
		Editing:  true,
	})
	if res.Drawn != 1 || len(s.texts) != 1 || s.texts[0] != "two" {
		t.Errorf("drawn=%d texts=%v, want only b", res.Drawn, s.texts)
	}
}

func TestRenderSkipsUnmeasurableBlock(t *testing.T) {
	var skipped []string
	observability.SetRenderHooks(skipHooks{&skipped})
	defer observability.Reset()

	broken := textBlock("bad", "oops")
	broken.Style.FontFamily = "Broken"

	s := &fakeSurface{}
	res := Render(s, Frame{Blocks: []block.Block{textBlock("a", "one"), broken, textBlock("c", "three")}})

	if res.Drawn != 2 {
		t.Errorf("Drawn = %d, want 2", res.Drawn)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].BlockID != "bad" {
		t.Fatalf("Skipped = %+v, want bad", res.Skipped)
	}
	if !errors.Is(res.Skipped[0].Err, errors.ErrCodeMeasureFailed) {
		t.Errorf("skip error = %v, want MEASURE_FAILED", res.Skipped[0].Err)
	}
	if len(skipped) != 1 || skipped[0] != "bad" {
		t.Errorf("hook saw %v", skipped)
	}
	if res.Err() == nil {
		t.Error("Err() = nil, want joined skip error")
	}
}

func TestRenderDrawFailure(t *testing.T) {
	s := &fakeSurface{drawErr: stderrors.New("surface lost")}
	res := Render(s, Frame{Blocks: []block.Block{textBlock("a", "one")}})
	if res.Drawn != 0 || len(res.Skipped) != 1 || !errors.Is(res.Skipped[0].Err, errors.ErrCodeDrawFailed) {
		t.Errorf("Render() = %+v, want a DRAW_FAILED skip", res)
	}
}

func TestRenderUnknownType(t *testing.T) {
	b := textBlock("a", "x")
	b.Type = "shape"
	res := Render(&fakeSurface{}, Frame{Blocks: []block.Block{b}})
	if len(res.Skipped) != 1 || !errors.Is(res.Skipped[0].Err, errors.ErrCodeInvalidBlockType) {
		t.Errorf("Render() = %+v, want INVALID_BLOCK_TYPE skip", res)
	}
}

func TestRenderSelectionOutline(t *testing.T) {
	b := textBlock("a", "one")
	b.Box = geom.Box{X: 100, Y: 100, Width: -50, Height: -20}

	tests := []struct {
		name    string
		editing bool
		want    int
	}{
		{"selected", false, 1},
		{"editing", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSurface{}
			Render(s, Frame{Blocks: []block.Block{b}, ActiveID: "a", Editing: tt.editing}, WithSelectionOutline("#ff0000"))
			if len(s.strokes) != tt.want {
				t.Fatalf("strokes = %v, want %d", s.strokes, tt.want)
			}
			if tt.want == 1 {
				if want := (geom.Box{X: 50, Y: 80, Width: 50, Height: 20}); s.strokes[0] != want {
					t.Errorf("outline = %v, want %v", s.strokes[0], want)
				}
			}
		})
	}
}

type skipHooks struct{ ids *[]string }

func (h skipHooks) OnBlockSkipped(id string, _ error) { *h.ids = append(*h.ids, id) }

func (skipHooks) OnRenderComplete(int, int, time.Duration) {}
