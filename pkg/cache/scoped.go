package cache

import (
	"context"
	"time"
)

type scoped struct {
	inner  Cache
	prefix string
}

// Scoped returns a Cache that prefixes every key, giving tools that share a
// backend separate namespaces. Closing it closes inner.
func Scoped(inner Cache, prefix string) Cache {
	return &scoped{inner: inner, prefix: prefix}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }
