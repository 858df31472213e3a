package editor

import (
	"github.com/matzehuels/blockcanvas/pkg/block"
	"github.com/matzehuels/blockcanvas/pkg/geom"
	"github.com/matzehuels/blockcanvas/pkg/hittest"
)

// DefaultInitialSize is the box of a freshly created block before any drag.
var DefaultInitialSize = geom.Dimensions{Width: 50, Height: 24}

type config struct {
	order       hittest.ScanOrder
	initialSize geom.Dimensions
	tolerance   float64
	style       block.Style
	newID       func() string
}

func defaultConfig() config {
	return config{
		order:       hittest.TopmostFirst,
		initialSize: DefaultInitialSize,
		tolerance:   hittest.HandleTolerance,
		style:       block.DefaultStyle(),
	}
}

// Option configures an Editor.
type Option func(*config)

// WithScanOrder sets which of several overlapping blocks a select click
// picks. The default is hittest.TopmostFirst.
func WithScanOrder(o hittest.ScanOrder) Option {
	return func(c *config) { c.order = o }
}

// WithInitialSize sets the box size of newly created blocks.
func WithInitialSize(d geom.Dimensions) Option {
	return func(c *config) { c.initialSize = d }
}

// WithHandleTolerance sets the corner handle tolerance in canvas units.
func WithHandleTolerance(tol float64) Option {
	return func(c *config) { c.tolerance = tol }
}

// WithDefaultStyle sets the style of newly created blocks.
func WithDefaultStyle(s block.Style) Option {
	return func(c *config) { c.style = s }
}

// WithIDFunc replaces the random id generator, e.g. for deterministic
// tests and replays.
func WithIDFunc(f func() string) Option {
	return func(c *config) { c.newID = f }
}
