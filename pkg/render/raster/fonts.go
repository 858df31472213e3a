package raster

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/matzehuels/blockcanvas/pkg/errors"
)

var builtinFonts = map[string][]byte{
	"Go":        goregular.TTF,
	"Go Bold":   gobold.TTF,
	"Go Italic": goitalic.TTF,
	"Go Mono":   gomono.TTF,
}

var aliases = map[string]string{
	"sans-serif": "Go",
	"monospace":  "Go Mono",
}

type faceKey struct {
	family string
	size   float64
}

// maxFaces bounds the face cache. The size search and scaled scenes ask for
// many fractional sizes, so the cache is emptied once it reaches this many.
const maxFaces = 256

// FontCache parses fonts lazily and caches faces per family and size. Its
// methods are safe for concurrent use. The faces it returns are not: a face
// must be used by one goroutine at a time.
type FontCache struct {
	mu    sync.Mutex
	ttf   map[string][]byte
	fonts map[string]*sfnt.Font
	faces map[faceKey]font.Face
}

// NewFontCache returns a cache holding the built-in Go fonts.
func NewFontCache() *FontCache {
	fc := &FontCache{
		ttf:   make(map[string][]byte, len(builtinFonts)),
		fonts: make(map[string]*sfnt.Font),
		faces: make(map[faceKey]font.Face),
	}
	for name, data := range builtinFonts {
		fc.ttf[name] = data
	}
	return fc
}

// Register adds a TrueType or OpenType font under family. The font is parsed
// immediately so that bad data is reported here rather than at draw time.
func (fc *FontCache) Register(family string, ttf []byte) error {
	if err := errors.ValidateFontFamily(family); err != nil {
		return err
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %q", family)
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.ttf[family] = ttf
	fc.fonts[family] = f
	for k := range fc.faces {
		if k.family == family {
			delete(fc.faces, k)
		}
	}
	return nil
}

// Families returns the registered family names, sorted.
func (fc *FontCache) Families() []string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	names := make([]string, 0, len(fc.ttf))
	for name := range fc.ttf {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether family (or its alias) is registered.
func (fc *FontCache) Has(family string) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	_, ok := fc.ttf[resolve(family)]
	return ok
}

// Face returns the face of family at size pixels.
func (fc *FontCache) Face(family string, size float64) (font.Face, error) {
	family = resolve(family)
	key := faceKey{family, size}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if face, ok := fc.faces[key]; ok {
		return face, nil
	}

	f, ok := fc.fonts[family]
	if !ok {
		data, known := fc.ttf[family]
		if !known {
			return nil, errors.New(errors.ErrCodeMeasureFailed, "font family %q not loaded", family)
		}
		var err error
		if f, err = opentype.Parse(data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMeasureFailed, err, "parse font %q", family)
		}
		fc.fonts[family] = f
	}

	// 72 DPI makes points equal pixels.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMeasureFailed, err, "face %q at %gpx", family, size)
	}
	if len(fc.faces) >= maxFaces {
		clear(fc.faces)
	}
	fc.faces[key] = face
	return face, nil
}

func resolve(family string) string {
	family = strings.TrimSpace(family)
	if alias, ok := aliases[strings.ToLower(family)]; ok {
		return alias
	}
	return family
}
