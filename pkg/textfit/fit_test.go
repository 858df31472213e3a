package textfit

import (
	stderrors "errors"
	"math"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

// monospace measures every rune as half an em wide with a 3/4 em ascent.
var monospace = MeasureFunc(func(text string, font FontSpec) (Metrics, error) {
	n := float64(utf8.RuneCountInString(text))
	if n == 0 {
		return Metrics{}, nil
	}
	return Metrics{Width: n * font.Size / 2, Ascent: font.Size * 3 / 4}, nil
})

// linearMaxFontSize is the straightforward decrement-by-one scan.
func linearMaxFontSize(box geom.Box, text string, ideal float64) float64 {
	for size := ideal; size > MinFontSize; size-- {
		m, _ := monospace(text, FontSpec{Size: size})
		if m.Width <= box.Width && m.Ascent <= box.Height {
			return size
		}
	}
	return MinFontSize
}

func TestMaxFontSizeThatFits(t *testing.T) {
	tests := []struct {
		name  string
		box   geom.Box
		text  string
		ideal float64
		want  float64
	}{
		{"roomy box keeps ideal", geom.Box{Width: 500, Height: 100}, "Hello", 24, 24},
		{"width bound", geom.Box{Width: 50, Height: 24}, "Hello", 24, 20},
		{"height bound", geom.Box{Width: 500, Height: 9}, "Hello", 24, 12},
		{"exact fit", geom.Box{Width: 60, Height: 18}, "Hello", 24, 24},
		{"never fits floors at one", geom.Box{Width: 0.1, Height: 0.1}, "Hello", 24, 1},
		{"fractional ideal steps by one", geom.Box{Width: 50, Height: 100}, "Hello", 24.5, 19.5},
		{"ideal below floor", geom.Box{Width: 500, Height: 500}, "Hello", 0.5, 1},
		{"empty text", geom.Box{}, "", 24, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxFontSizeThatFits(tt.box, tt.text, "Go", tt.ideal, monospace)
			if err != nil {
				t.Fatalf("MaxFontSizeThatFits() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MaxFontSizeThatFits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaxFontSizeHugeIdeal(t *testing.T) {
	box := geom.Box{Width: 100, Height: 50}
	want, err := MaxFontSizeThatFits(box, "Hello", "Go", 1e6, monospace)
	if err != nil {
		t.Fatal(err)
	}
	for _, ideal := range []float64{MaxFontSize + 0.5, 1e19, 1e300, math.MaxFloat64} {
		got, err := MaxFontSizeThatFits(box, "Hello", "Go", ideal, monospace)
		if err != nil {
			t.Fatalf("MaxFontSizeThatFits(ideal=%g) error = %v", ideal, err)
		}
		if got != want {
			t.Errorf("MaxFontSizeThatFits(ideal=%g) = %v, want %v", ideal, got, want)
		}
		m, _ := monospace("Hello", FontSpec{Size: got})
		if m.Width > box.Width || m.Ascent > box.Height {
			t.Errorf("MaxFontSizeThatFits(ideal=%g) = %v does not fit %v", ideal, got, box)
		}
	}
}

func TestMaxFontSizeMatchesLinearScan(t *testing.T) {
	texts := []string{"A", "Hello", "Certificate of Completion"}
	for _, text := range texts {
		for w := 0.0; w <= 400; w += 17 {
			for h := 0.0; h <= 60; h += 7 {
				for _, ideal := range []float64{1, 2, 13, 24, 48.25} {
					box := geom.Box{Width: w, Height: h}
					got, err := MaxFontSizeThatFits(box, text, "Go", ideal, monospace)
					if err != nil {
						t.Fatal(err)
					}
					if want := linearMaxFontSize(box, text, ideal); got != want {
						t.Fatalf("MaxFontSizeThatFits(%v, %q, %v) = %v, want %v", box, text, ideal, got, want)
					}
				}
			}
		}
	}
}

func TestMaxFontSizeMonotonicInBox(t *testing.T) {
	prev := 0.0
	for w := 1.0; w <= 300; w += 5 {
		got, err := MaxFontSizeThatFits(geom.Box{Width: w, Height: 40}, "Monotonic", "Go", 36, monospace)
		if err != nil {
			t.Fatal(err)
		}
		if got < prev {
			t.Fatalf("width %v: size %v < previous %v", w, got, prev)
		}
		prev = got
	}

	prev = 0
	for h := 1.0; h <= 60; h += 2 {
		got, err := MaxFontSizeThatFits(geom.Box{Width: 1000, Height: h}, "Monotonic", "Go", 36, monospace)
		if err != nil {
			t.Fatal(err)
		}
		if got < prev {
			t.Fatalf("height %v: size %v < previous %v", h, got, prev)
		}
		prev = got
	}
}

func TestMaxFontSizeMeasureFailure(t *testing.T) {
	broken := MeasureFunc(func(string, FontSpec) (Metrics, error) {
		return Metrics{}, stderrors.New("surface unavailable")
	})
	_, err := MaxFontSizeThatFits(geom.Box{Width: 10, Height: 10}, "x", "Go", 24, broken)
	if !errors.Is(err, errors.ErrCodeMeasureFailed) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeMeasureFailed)
	}

	_, err = MaxFontSizeThatFits(geom.Box{Width: 10, Height: 10}, "x", "Go", 24, nil)
	if !errors.Is(err, errors.ErrCodeMeasureFailed) {
		t.Errorf("nil measurer error = %v, want %v", err, errors.ErrCodeMeasureFailed)
	}
}

func TestMaxFontSizeRejectsNonFinite(t *testing.T) {
	for _, ideal := range []float64{math.Inf(1), math.NaN()} {
		_, err := MaxFontSizeThatFits(geom.Box{Width: 10, Height: 10}, "x", "Go", ideal, monospace)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("MaxFontSizeThatFits(%v) error = %v, want %v", ideal, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestFitAlignment(t *testing.T) {
	box := geom.Box{X: 10, Y: 20, Width: 100, Height: 50}

	// "Hi" at size 10 measures 10 wide with a 7.5 ascent.
	tests := []struct {
		name         string
		align        block.HorizontalAlign
		valign       block.VerticalAlign
		wantX, wantY float64
		wantBaseline Baseline
	}{
		{"left top", block.AlignLeft, block.VAlignTop, 10, 20, BaselineHanging},
		{"center hanging", block.AlignCenter, block.VAlignHanging, 55, 70, BaselineAlphabetic},
		{"right bottom", block.AlignRight, block.VAlignBottom, 100, 70, BaselineBottom},
		{"center center", block.AlignCenter, block.VAlignCenter, 55, 48.75, BaselineAlphabetic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Fit(Params{
				Box:           box,
				Text:          "Hi",
				FontFamily:    "Go",
				IdealFontSize: 10,
				Align:         tt.align,
				VerticalAlign: tt.valign,
			}, monospace)
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if l.FontSize != 10 {
				t.Errorf("FontSize = %v, want 10", l.FontSize)
			}
			if l.X != tt.wantX || l.Y != tt.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", l.X, l.Y, tt.wantX, tt.wantY)
			}
			if l.Baseline != tt.wantBaseline {
				t.Errorf("Baseline = %v, want %v", l.Baseline, tt.wantBaseline)
			}
		})
	}
}

func TestFitUsesFittedMetrics(t *testing.T) {
	b := block.Block{
		ID:   "b",
		Type: block.Text,
		Box:  geom.Box{X: 0, Y: 0, Width: 50, Height: 24},
		Text: "Hello",
		Style: block.Style{
			FontSize:      24,
			FontFamily:    "Go",
			Color:         "#000",
			Align:         block.AlignRight,
			VerticalAlign: block.VAlignCenter,
		},
	}
	l, err := FitBlock(b, monospace)
	if err != nil {
		t.Fatalf("FitBlock() error = %v", err)
	}
	if l.FontSize != 20 {
		t.Fatalf("FontSize = %v, want 20", l.FontSize)
	}
	// Width 50 and ascent 15 at size 20.
	if l.X != 0 {
		t.Errorf("X = %v, want 0", l.X)
	}
	if l.Y != 12+7.5 {
		t.Errorf("Y = %v, want %v", l.Y, 12+7.5)
	}
	if l.Metrics != (Metrics{Width: 50, Ascent: 15}) {
		t.Errorf("Metrics = %+v", l.Metrics)
	}
	if got := l.Font("Go").String(); got != "20px Go" {
		t.Errorf("Font() = %q, want %q", got, "20px Go")
	}
}
