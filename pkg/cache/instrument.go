package cache

import (
	"context"
	"time"

	"github.com/matzehuels/blockcanvas/pkg/observability"
)

type instrumented struct{ Cache }

// Instrument reports every hit, miss and write of c to the registered
// observability cache hooks.
func Instrument(c Cache) Cache { return instrumented{c} }

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	switch {
	case err != nil:
	case ok:
		observability.Cache().OnCacheHit(ctx, key)
	default:
		observability.Cache().OnCacheMiss(ctx, key)
	}
	return data, ok, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
	return nil
}
