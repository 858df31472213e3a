// Package geom provides the axis-aligned geometry shared by the editor core.
//
// # Boxes
//
// A [Box] is stored as an origin plus extent. While a draw or resize gesture
// is in flight the extent may go negative (the pointer crossed the fixed
// corner); [NormalizeBox] restores non-negative width and height once the
// gesture completes without moving any of the four corners.
//
// # Resizing
//
// [ResizeBox] moves only the two edges adjacent to the dragged [Corner] and
// keeps the diagonally opposite corner fixed:
//
//	b := geom.Box{X: 50, Y: 50, Width: 50, Height: 24}
//	b = geom.ResizeBox(b, geom.BottomRight, geom.Point{X: 150, Y: 100})
//	// b == {X: 50, Y: 50, Width: 100, Height: 50}
package geom
