// Package hittest classifies pointer positions against block boxes and maps
// the result to a cursor affordance.
//
// A point within [HandleTolerance] of a box corner (on both axes) is that
// corner's resize handle; handles take precedence over the interior. Any
// other point inside the closed box is [Inside]; everything else is [None].
//
// # Scan order
//
// When blocks overlap, [FindBlockAt] needs a policy for which one wins.
// [TopmostFirst] scans from the last inserted (visually topmost) block down
// and is what users expect from "click selects what you see". [ForwardScan]
// scans in insertion order and therefore picks the bottom-most block; it is
// kept for layouts authored against that behaviour.
package hittest
