// Package cache stores rendered artifacts keyed by the content that produced
// them.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for hosts rendering on several
//     machines
//
// Keys come from [RenderKey], which hashes the scene bytes together with
// every option that changes the output. [Scoped] prefixes keys so several
// tools can share one backend, and [Instrument] reports hits, misses and
// writes to the observability cache hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// RenderKeyOpts are the render settings that change the output bytes.
type RenderKeyOpts struct {
	Width      int      `json:"w"`
	Height     int      `json:"h"`
	Format     string   `json:"f"`
	Outline    string   `json:"o,omitempty"`
	Fallback   string   `json:"fb,omitempty"`
	Background string   `json:"bg,omitempty"`    // hash of the background bytes
	Fonts      []string `json:"fonts,omitempty"` // family=hash of each extra font
	Version    string   `json:"v"`
}

// RenderKey returns the cache key of a render of the scene with the given
// content hash.
func RenderKey(sceneHash string, opts RenderKeyOpts) string {
	return hashKey("render", sceneHash, opts)
}
