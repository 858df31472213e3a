package geom

import "fmt"

// Point is a position in canvas coordinates. The origin is the top-left
// corner of the canvas; y grows downward.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dimensions is the size of a canvas or of a freshly created box.
type Dimensions struct {
	Width, Height float64
}

func (d Dimensions) String() string { return fmt.Sprintf("%gx%g", d.Width, d.Height) }

// Box is an axis-aligned rectangle given by its origin and extent.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Origin returns the box origin.
func (b Box) Origin() Point { return Point{X: b.X, Y: b.Y} }

// Right returns the x coordinate of the far vertical edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the far horizontal edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Size returns the extent of the box.
func (b Box) Size() Dimensions { return Dimensions{Width: b.Width, Height: b.Height} }

// Area returns the absolute enclosed area.
func (b Box) Area() float64 {
	a := b.Width * b.Height
	if a < 0 {
		return -a
	}
	return a
}

// Corner returns the coordinate of the labelled corner. For a box with a
// negative extent the labels follow the stored origin, not the visual layout.
func (b Box) Corner(c Corner) Point {
	switch c {
	case TopLeft:
		return Point{X: b.X, Y: b.Y}
	case TopRight:
		return Point{X: b.Right(), Y: b.Y}
	case BottomLeft:
		return Point{X: b.X, Y: b.Bottom()}
	default:
		return Point{X: b.Right(), Y: b.Bottom()}
	}
}

// Contains reports whether p lies within the closed box. Negative extents
// are handled as if the box were normalized.
func (b Box) Contains(p Point) bool {
	n := NormalizeBox(b)
	return p.X >= n.X && p.X <= n.Right() && p.Y >= n.Y && p.Y <= n.Bottom()
}

// MoveTo returns the box with its origin at p and the same extent.
func (b Box) MoveTo(p Point) Box {
	b.X, b.Y = p.X, p.Y
	return b
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

func (b Box) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", b.X, b.Y, b.Width, b.Height)
}

// Corner identifies one of the four resize handles of a box.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists the corners in hit-test precedence order.
var Corners = [...]Corner{TopLeft, TopRight, BottomLeft, BottomRight}

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	switch c {
	case TopLeft:
		return BottomRight
	case TopRight:
		return BottomLeft
	case BottomLeft:
		return TopRight
	default:
		return TopLeft
	}
}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return fmt.Sprintf("corner(%d)", int(c))
}

// ResizeBox drags corner c of b to p. Only the two edges adjacent to c
// move; the opposite corner keeps its coordinates. The result may have a
// negative extent until it is passed through NormalizeBox.
func ResizeBox(b Box, c Corner, p Point) Box {
	right, bottom := b.Right(), b.Bottom()
	switch c {
	case TopLeft:
		return Box{X: p.X, Y: p.Y, Width: right - p.X, Height: bottom - p.Y}
	case TopRight:
		return Box{X: b.X, Y: p.Y, Width: p.X - b.X, Height: bottom - p.Y}
	case BottomLeft:
		return Box{X: p.X, Y: b.Y, Width: right - p.X, Height: p.Y - b.Y}
	default:
		return Box{X: b.X, Y: b.Y, Width: p.X - b.X, Height: p.Y - b.Y}
	}
}

// NormalizeBox relabels origin and extent so that width and height are
// non-negative. The enclosed area and the set of corner points are unchanged.
func NormalizeBox(b Box) Box {
	if b.Width < 0 {
		b.X += b.Width
		b.Width = -b.Width
	}
	if b.Height < 0 {
		b.Y += b.Height
		b.Height = -b.Height
	}
	return b
}
