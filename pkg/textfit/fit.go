package textfit

import (
	"math"
	"sort"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

// MinFontSize is the floor of the font-size search.
const MinFontSize = 1.0

// MaxFontSize caps the ideal size handed to the search. Larger ideals are
// searched from MaxFontSize down.
const MaxFontSize = 1 << 24

// Baseline is the text baseline a draw position refers to.
type Baseline string

const (
	BaselineHanging    Baseline = "hanging"
	BaselineAlphabetic Baseline = "alphabetic"
	BaselineBottom     Baseline = "bottom"
)

// Params describes the text to fit.
type Params struct {
	Box           geom.Box
	Text          string
	FontFamily    string
	IdealFontSize float64
	Align         block.HorizontalAlign
	VerticalAlign block.VerticalAlign
}

// Layout is where and how large to draw the text.
type Layout struct {
	FontSize float64
	X, Y     float64
	Baseline Baseline
	Metrics  Metrics // measured at FontSize
}

// Font returns the FontSpec of the layout for the given family.
func (l Layout) Font(family string) FontSpec { return FontSpec{Size: l.FontSize, Family: family} }

// ParamsFor extracts fit parameters from a block.
func ParamsFor(b block.Block) Params {
	return Params{
		Box:           b.Box,
		Text:          b.Text,
		FontFamily:    b.Style.FontFamily,
		IdealFontSize: b.Style.FontSize,
		Align:         b.Style.Align,
		VerticalAlign: b.Style.VerticalAlign,
	}
}

// FitBlock fits the block's text into its box.
func FitBlock(b block.Block, m Measurer) (Layout, error) {
	return Fit(ParamsFor(b), m)
}

// Fit computes the largest font size at which the text fits the box and the
// aligned draw position for it.
func Fit(p Params, m Measurer) (Layout, error) {
	size, err := MaxFontSizeThatFits(p.Box, p.Text, p.FontFamily, p.IdealFontSize, m)
	if err != nil {
		return Layout{}, err
	}
	metrics, err := measure(m, p.Text, FontSpec{Size: size, Family: p.FontFamily})
	if err != nil {
		return Layout{}, err
	}

	l := Layout{FontSize: size, Metrics: metrics}

	switch p.Align {
	case block.AlignCenter:
		l.X = p.Box.X + p.Box.Width/2 - metrics.Width/2
	case block.AlignRight:
		l.X = p.Box.X + p.Box.Width - metrics.Width
	default:
		l.X = p.Box.X
	}

	switch p.VerticalAlign {
	case block.VAlignHanging:
		l.Y, l.Baseline = p.Box.Bottom(), BaselineAlphabetic
	case block.VAlignBottom:
		l.Y, l.Baseline = p.Box.Bottom(), BaselineBottom
	case block.VAlignCenter:
		l.Y, l.Baseline = p.Box.Y+p.Box.Height/2+metrics.Ascent/2, BaselineAlphabetic
	default:
		l.Y, l.Baseline = p.Box.Y, BaselineHanging
	}
	return l, nil
}

// MaxFontSizeThatFits returns the largest size in {ideal, ideal-1, ...}
// above MinFontSize whose metrics fit the box, or MinFontSize if none does.
// Ideals above MaxFontSize are clamped to it first.
func MaxFontSizeThatFits(box geom.Box, text, family string, ideal float64, m Measurer) (float64, error) {
	if math.IsNaN(ideal) || math.IsInf(ideal, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "ideal font size must be finite (got %v)", ideal)
	}
	if ideal <= MinFontSize {
		return MinFontSize, nil
	}
	ideal = min(ideal, MaxFontSize)

	// Candidates are ideal-k for k in [0, n), all strictly above the floor.
	n := int(math.Ceil(ideal - MinFontSize))
	var measureErr error
	k := sort.Search(n, func(k int) bool {
		if measureErr != nil {
			return true
		}
		ok, err := fits(m, box, text, FontSpec{Size: ideal - float64(k), Family: family})
		if err != nil {
			measureErr = err
			return true
		}
		return ok
	})
	if measureErr != nil {
		return 0, measureErr
	}
	if k == n {
		return MinFontSize, nil
	}
	return ideal - float64(k), nil
}

func fits(m Measurer, box geom.Box, text string, font FontSpec) (bool, error) {
	metrics, err := measure(m, text, font)
	if err != nil {
		return false, err
	}
	return metrics.Width <= box.Width && metrics.Ascent <= box.Height, nil
}

func measure(m Measurer, text string, font FontSpec) (Metrics, error) {
	if m == nil {
		return Metrics{}, errors.New(errors.ErrCodeMeasureFailed, "no measurer available")
	}
	metrics, err := m.MeasureText(text, font)
	if err != nil {
		if errors.Is(err, errors.ErrCodeMeasureFailed) {
			return Metrics{}, err
		}
		return Metrics{}, errors.Wrap(errors.ErrCodeMeasureFailed, err, "measure %q at %s", text, font)
	}
	return metrics, nil
}
