package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockcanvas/pkg/observability"
)

// logHooks reports render and cache events to the CLI logger at debug
// level, so --verbose shows cache hits and skipped blocks.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnBlockSkipped(blockID string, err error) {
	h.logger.Debug("block skipped", "id", blockID, "err", err)
}

func (h logHooks) OnRenderComplete(drawn, skipped int, d time.Duration) {
	h.logger.Debug("render pass", "drawn", drawn, "skipped", skipped, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("cache hit", "key", shortKey(key))
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("cache miss", "key", shortKey(key))
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("cache set", "key", shortKey(key), "bytes", size)
}

// registerHooks installs logHooks for the render and cache registries.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
