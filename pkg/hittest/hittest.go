package hittest

import (
	"fmt"

	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/geom"
)

// HandleTolerance is the distance in canvas pixels around a corner that
// still counts as grabbing the handle.
const HandleTolerance = 5.0

// Hit is the classification of a point against a box.
type Hit int

const (
	None Hit = iota
	Inside
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

func (h Hit) String() string {
	switch h {
	case None:
		return "none"
	case Inside:
		return "inside"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return fmt.Sprintf("hit(%d)", int(h))
}

// IsHandle reports whether h is one of the corner handles.
func (h Hit) IsHandle() bool { return h >= TopLeft && h <= BottomRight }

// Corner converts a handle hit to its geometric corner.
func (h Hit) Corner() (geom.Corner, bool) {
	switch h {
	case TopLeft:
		return geom.TopLeft, true
	case TopRight:
		return geom.TopRight, true
	case BottomLeft:
		return geom.BottomLeft, true
	case BottomRight:
		return geom.BottomRight, true
	}
	return 0, false
}

// HandleHit converts a corner to the matching handle hit.
func HandleHit(c geom.Corner) Hit {
	switch c {
	case geom.TopLeft:
		return TopLeft
	case geom.TopRight:
		return TopRight
	case geom.BottomLeft:
		return BottomLeft
	default:
		return BottomRight
	}
}

// Classify classifies p against b with the default HandleTolerance.
func Classify(p geom.Point, b geom.Box) Hit {
	return ClassifyWithin(p, b, HandleTolerance)
}

// ClassifyWithin classifies p against b, treating points within tol of a
// corner on both axes as that corner's handle.
func ClassifyWithin(p geom.Point, b geom.Box, tol float64) Hit {
	for _, c := range geom.Corners {
		if near(p, b.Corner(c), tol) {
			return HandleHit(c)
		}
	}
	if b.Contains(p) {
		return Inside
	}
	return None
}

func near(p, q geom.Point, tol float64) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx >= -tol && dx <= tol && dy >= -tol && dy <= tol
}

// ScanOrder decides which of several overlapping blocks is found first.
type ScanOrder int

const (
	// TopmostFirst scans from the most recently inserted block.
	TopmostFirst ScanOrder = iota
	// ForwardScan scans in insertion order.
	ForwardScan
)

func (o ScanOrder) String() string {
	if o == ForwardScan {
		return "forward"
	}
	return "topmost"
}

// ParseScanOrder parses "topmost" or "forward".
func ParseScanOrder(s string) (ScanOrder, error) {
	switch s {
	case "topmost", "":
		return TopmostFirst, nil
	case "forward":
		return ForwardScan, nil
	}
	return 0, fmt.Errorf("unknown scan order %q (want topmost or forward)", s)
}

// FindBlockAt returns the index of the first block, in the given order,
// whose classification of p is not None, together with that hit. It returns
// -1 and None when no block is hit.
func FindBlockAt(p geom.Point, blocks []block.Block, order ScanOrder, tol float64) (int, Hit) {
	n := len(blocks)
	for k := 0; k < n; k++ {
		i := k
		if order == TopmostFirst {
			i = n - 1 - k
		}
		if h := ClassifyWithin(p, blocks[i].Box, tol); h != None {
			return i, h
		}
	}
	return -1, None
}
