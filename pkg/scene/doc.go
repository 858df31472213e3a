// Package scene reads and writes the TOML documents used by the blockcanvas
// command-line host.
//
// A scene describes a canvas and its blocks:
//
//	[canvas]
//	width = 1000
//	height = 750
//	background = "paper.png"   # relative to the scene file
//
//	[[blocks]]
//	id = "title"
//	x = 100
//	y = 80
//	width = 800
//	height = 90
//	text = "Certificate of Completion"
//	font_size = 64
//	align = "center"
//
// Omitted block fields take the editor defaults: type "text", the default
// style, and a positional id ("block-1", "block-2", ...) when id is empty.
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// A script is a list of pointer events replayed against a scene:
//
//	scene = "certificate.toml"
//
//	[[events]]
//	kind = "tool"
//	tool = "text"
//
//	[[events]]
//	kind = "down"
//	x = 50
//	y = 50
//
// Event kinds are down, move, up, commit (with text), tool (with tool) and
// reset.
//
// Background images may be PNG, JPEG, GIF, WebP or BMP.
package scene
