package geom

import "testing"

func TestResizeBoxScenario(t *testing.T) {
	b := Box{X: 50, Y: 50, Width: 50, Height: 24}
	got := NormalizeBox(ResizeBox(b, BottomRight, Point{X: 150, Y: 100}))
	want := Box{X: 50, Y: 50, Width: 100, Height: 50}
	if got != want {
		t.Errorf("ResizeBox() = %v, want %v", got, want)
	}
}

func TestResizeBoxFormulas(t *testing.T) {
	b := Box{X: 10, Y: 20, Width: 30, Height: 40}
	p := Point{X: 5, Y: 70}

	tests := []struct {
		corner Corner
		want   Box
	}{
		{TopLeft, Box{X: 5, Y: 70, Width: 35, Height: -10}},
		{TopRight, Box{X: 10, Y: 70, Width: -5, Height: -10}},
		{BottomLeft, Box{X: 5, Y: 20, Width: 35, Height: 50}},
		{BottomRight, Box{X: 10, Y: 20, Width: -5, Height: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.corner.String(), func(t *testing.T) {
			if got := ResizeBox(b, tt.corner, p); got != tt.want {
				t.Errorf("ResizeBox(%v) = %v, want %v", tt.corner, got, tt.want)
			}
		})
	}
}

// Every corner/drag combination must keep the opposite corner fixed and
// enclose exactly the rectangle spanned by the fixed corner and the pointer.
func TestResizeThenNormalizeKeepsOppositeCorner(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: 50, Y: 50, Width: 50, Height: 24},
		{X: -20, Y: 15, Width: 7, Height: 300},
	}
	points := []Point{
		{X: 0, Y: 0},
		{X: 200, Y: 200},
		{X: -100, Y: 40},
		{X: 55, Y: -60},
		{X: 57, Y: 74},
	}

	for _, b := range boxes {
		for _, c := range Corners {
			for _, p := range points {
				fixed := b.Corner(c.Opposite())
				got := NormalizeBox(ResizeBox(b, c, p))

				if got.Width < 0 || got.Height < 0 {
					t.Fatalf("NormalizeBox(ResizeBox(%v, %v, %v)) = %v has negative extent", b, c, p, got)
				}
				if !hasCorner(got, fixed) {
					t.Errorf("ResizeBox(%v, %v, %v) = %v lost fixed corner %v", b, c, p, got, fixed)
				}
				if !hasCorner(got, p) {
					t.Errorf("ResizeBox(%v, %v, %v) = %v does not reach pointer", b, c, p, got)
				}
				wantArea := abs(p.X-fixed.X) * abs(p.Y-fixed.Y)
				if got.Area() != wantArea {
					t.Errorf("area = %v, want %v", got.Area(), wantArea)
				}
			}
		}
	}
}

func TestNormalizeBox(t *testing.T) {
	tests := []struct {
		name string
		in   Box
		want Box
	}{
		{"already normal", Box{X: 1, Y: 2, Width: 3, Height: 4}, Box{X: 1, Y: 2, Width: 3, Height: 4}},
		{"negative width", Box{X: 10, Y: 2, Width: -4, Height: 4}, Box{X: 6, Y: 2, Width: 4, Height: 4}},
		{"negative both", Box{X: 10, Y: 10, Width: -10, Height: -5}, Box{X: 0, Y: 5, Width: 10, Height: 5}},
		{"degenerate", Box{X: 3, Y: 3}, Box{X: 3, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeBox(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeBox(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if NormalizeBox(got) != got {
				t.Errorf("NormalizeBox is not idempotent for %v", tt.in)
			}
		})
	}
}

func TestContains(t *testing.T) {
	b := Box{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{X: 10, Y: 10}, true},
		{Point{X: 30, Y: 20}, true},
		{Point{X: 20, Y: 15}, true},
		{Point{X: 31, Y: 15}, false},
		{Point{X: 20, Y: 9.5}, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	flipped := Box{X: 30, Y: 20, Width: -20, Height: -10}
	if !flipped.Contains(Point{X: 20, Y: 15}) {
		t.Error("Contains() on un-normalized box = false, want true")
	}
}

func TestTranslateAndMoveTo(t *testing.T) {
	b := Box{X: 1, Y: 2, Width: 3, Height: 4}
	if got := b.Translate(5, -2); got != (Box{X: 6, Y: 0, Width: 3, Height: 4}) {
		t.Errorf("Translate() = %v", got)
	}
	if got := b.MoveTo(Point{X: 9, Y: 9}); got != (Box{X: 9, Y: 9, Width: 3, Height: 4}) {
		t.Errorf("MoveTo() = %v", got)
	}
}

func TestCornerOpposite(t *testing.T) {
	for _, c := range Corners {
		if c.Opposite().Opposite() != c {
			t.Errorf("%v.Opposite().Opposite() = %v", c, c.Opposite().Opposite())
		}
		if c.Opposite() == c {
			t.Errorf("%v.Opposite() returned itself", c)
		}
	}
}

func hasCorner(b Box, p Point) bool {
	for _, c := range Corners {
		if b.Corner(c) == p {
			return true
		}
	}
	return false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
