// Package textfit lays out a single line of block text inside a fixed box.
//
// # Fitting
//
// [MaxFontSizeThatFits] starts at the block's ideal font size and steps down
// one unit at a time until the measured advance width fits the box width and
// the measured ascent fits the box height. The fits-test is monotonic in the
// font size, so the search is a binary search over the candidate steps and
// returns exactly what the linear scan would. Size 1 is a floor: text that
// does not fit even at size 1 is laid out at size 1.
//
// # Measurement
//
// Measuring text needs a rendering surface, so it is injected through the
// [Measurer] interface. The render/raster package provides one backed by
// golang.org/x/image fonts; tests use simple synthetic measurers.
//
// # Alignment
//
// [Fit] turns the fitted size into a draw position and baseline:
//
//	left   -> x = box.x
//	center -> x = box.x + box.width/2 - textWidth/2
//	right  -> x = box.x + box.width - textWidth
//
//	top     -> y = box.y,                           baseline hanging
//	hanging -> y = box.y + box.height,              baseline alphabetic
//	bottom  -> y = box.y + box.height,              baseline bottom
//	center  -> y = box.y + box.height/2 + ascent/2, baseline alphabetic
package textfit
