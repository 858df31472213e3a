package textfit

import "fmt"

// FontSpec identifies a font at a size, e.g. "24px Go".
type FontSpec struct {
	Size   float64
	Family string
}

func (f FontSpec) String() string { return fmt.Sprintf("%gpx %s", f.Size, f.Family) }

// Metrics are the measurements of a line of text at a FontSpec. Width is the
// advance width; Ascent is the actual bounding-box ascent above the
// alphabetic baseline.
type Metrics struct {
	Width  float64
	Ascent float64
}

// Measurer measures text. Implementations must be monotonic: a larger size
// never yields a smaller width or ascent.
type Measurer interface {
	MeasureText(text string, font FontSpec) (Metrics, error)
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string, font FontSpec) (Metrics, error)

// MeasureText calls f.
func (f MeasureFunc) MeasureText(text string, font FontSpec) (Metrics, error) {
	return f(text, font)
}
