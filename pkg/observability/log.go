package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line. It implements [PlanHooks],
// [CacheHooks] and [HTTPHooks] and is meant for [Install].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to l with an "obs" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("obs")}
}

func (h *LogHooks) OnPlanStart(_ context.Context, problems int) {
	h.logger.Debug("plan start", "problems", problems)
}

func (h *LogHooks) OnPlanComplete(_ context.Context, problems, cacheHits int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("plan failed", "problems", problems, "duration", d, "err", err)
		return
	}
	h.logger.Debug("plan done", "problems", problems, "cache_hits", cacheHits, "duration", d)
}

func (h *LogHooks) OnSearch(_ context.Context, problem string, found bool, d time.Duration) {
	h.logger.Debug("search", "problem", problem, "found", found, "batch", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
