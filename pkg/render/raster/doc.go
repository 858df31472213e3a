// Package raster provides a render.Surface backed by an in-memory RGBA image.
//
// Text is measured and drawn with golang.org/x/image/font using OpenType
// faces without hinting, so metrics grow monotonically with the font size as
// the fit search requires. The Go font family is built in:
//
//	Go, Go Bold, Go Italic, Go Mono   (aliases: sans-serif, monospace)
//
// Further fonts are registered with [WithFont]. Colours are CSS hex strings
// parsed with go-colorful. Background images are scaled with Catmull-Rom
// interpolation.
//
//	c, _ := raster.New(1000, 750)
//	res := render.Render(c, frame)
//	_ = c.EncodePNG(w)
package raster
