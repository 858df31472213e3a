package cli

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/blockcanvas/pkg/errors"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/textfit"
)

// cell is one terminal character cell.
type cell struct {
	r  rune   // 0 for the right half of a wide rune
	fg string // text colour
	bg string // background sampled from the image
	hl string // highlight, drawn over bg
}

// cellSurface is a render.Surface over a grid of terminal cells. One unit is
// one cell. Text is drawn one rune per column whatever the font size, so
// MeasureText reports the column width and an ascent of one row.
type cellSurface struct {
	cols, rows int
	cells      []cell
}

func newCellSurface(cols, rows int) *cellSurface {
	cols, rows = max(cols, 1), max(rows, 1)
	s := &cellSurface{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	s.ClearRect(geom.Box{Width: float64(cols), Height: float64(rows)})
	return s
}

func (s *cellSurface) Size() geom.Dimensions {
	return geom.Dimensions{Width: float64(s.cols), Height: float64(s.rows)}
}

func (s *cellSurface) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

// span returns the cell range covered by b, clipped to the grid.
func (s *cellSurface) span(b geom.Box) (c0, r0, c1, r1 int) {
	c0 = max(int(math.Floor(b.X)), 0)
	r0 = max(int(math.Floor(b.Y)), 0)
	c1 = min(int(math.Ceil(b.Right())), s.cols)
	r1 = min(int(math.Ceil(b.Bottom())), s.rows)
	return
}

func (s *cellSurface) ClearRect(b geom.Box) {
	c0, r0, c1, r1 := s.span(b)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			*s.at(col, row) = cell{r: ' '}
		}
	}
}

// DrawImage samples src at the centre of every covered cell into the cell
// background.
func (s *cellSurface) DrawImage(src image.Image, dst geom.Box) error {
	if src == nil {
		return errors.New(errors.ErrCodeDrawFailed, "nil image")
	}
	if dst.Width <= 0 || dst.Height <= 0 {
		return nil
	}
	bounds := src.Bounds()
	c0, r0, c1, r1 := s.span(dst)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			fx := (float64(col) + 0.5 - dst.X) / dst.Width
			fy := (float64(row) + 0.5 - dst.Y) / dst.Height
			x := bounds.Min.X + int(fx*float64(bounds.Dx()))
			y := bounds.Min.Y + int(fy*float64(bounds.Dy()))
			c, ok := colorful.MakeColor(src.At(x, y))
			if !ok {
				// Fully transparent.
				continue
			}
			s.at(col, row).bg = c.Hex()
		}
	}
	return nil
}

func (s *cellSurface) MeasureText(text string, _ textfit.FontSpec) (textfit.Metrics, error) {
	return textfit.Metrics{Width: float64(runewidth.StringWidth(text)), Ascent: 1}, nil
}

func (s *cellSurface) DrawText(text string, x, y float64, baseline textfit.Baseline, color string, _ textfit.FontSpec) error {
	row := int(math.Round(y))
	if baseline != textfit.BaselineHanging {
		row-- // one row of ascent above the baseline
	}
	col := int(math.Round(x))
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if c := s.at(col, row); c != nil {
			c.r, c.fg = r, color
		}
		if w == 2 {
			if c := s.at(col+1, row); c != nil {
				c.r, c.fg = 0, color
			}
		}
		col += max(w, 1)
	}
	return nil
}

// StrokeRect highlights the cells of r. A cell cannot hold a hairline, and
// a stroked border would cover the text of one-row boxes.
func (s *cellSurface) StrokeRect(r geom.Box, color string) error {
	s.highlight(r, color, true)
	return nil
}

// highlight sets the highlight of the cells of r. Unless force is set,
// cells that already carry a highlight keep it.
func (s *cellSurface) highlight(r geom.Box, color string, force bool) {
	c0, r0, c1, r1 := s.span(geom.NormalizeBox(r))
	// Boxes thinner than a cell still mark the cell they start in.
	c1, r1 = max(c1, c0+1), max(r1, r0+1)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if c := s.at(col, row); c != nil && (force || c.hl == "") {
				c.hl = color
			}
		}
	}
}

func (c cell) style() lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.fg != "" {
		st = st.Foreground(lipgloss.Color(c.fg))
	}
	if bg := c.background(); bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	return st
}

func (c cell) background() string {
	if c.hl != "" {
		return c.hl
	}
	return c.bg
}

// View renders the grid, one line per row, merging runs of equally styled
// cells.
func (s *cellSurface) View() string {
	var out strings.Builder
	for row := 0; row < s.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(cur.style().Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < s.cols; col++ {
			c := *s.at(col, row)
			if c.fg != cur.fg || c.background() != cur.background() {
				flush()
			}
			cur = c
			if c.r != 0 {
				run.WriteRune(c.r)
			}
		}
		flush()
	}
	return out.String()
}
