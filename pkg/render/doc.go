// Package render draws a frame of blocks onto a rendering surface.
//
// The surface is an explicit capability ([Surface]) passed to [Render]; the
// package never looks one up from global state. A render pass clears the
// surface, draws the background scaled to the surface size, then draws every
// block in sequence order. The block being text-edited is left out because
// the host shows its live text in an overlay input instead.
//
// # Failures
//
// A block whose text cannot be measured or drawn is skipped and recorded in
// [Result.Skipped]; the rest of the scene is still drawn. Render never
// aborts a pass.
//
// # Sub-packages
//
//   - raster: a [Surface] backed by image.RGBA and golang.org/x/image fonts
//   - statechart: diagrams of the editor transition table via Graphviz
package render
