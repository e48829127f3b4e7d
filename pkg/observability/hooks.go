// Package observability lets a binary observe planning, caching and remote
// dataset fetches without the libraries depending on a metrics backend.
//
// Libraries emit events through the accessors:
//
//	observability.Plan().OnPlanStart(ctx, len(problems))
//	observability.Cache().OnCacheHit(ctx, "solution")
//	observability.HTTP().OnResponse(ctx, "GET", host, path, 200, elapsed)
//
// and main installs implementations once at startup:
//
//	observability.Install(observability.NewLogHooks(logger))
//
// Until something is installed every accessor returns a no-op.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PlanHooks receives research planner events.
type PlanHooks interface {
	// OnPlanStart fires once per research line, after decomposition.
	OnPlanStart(ctx context.Context, problems int)
	// OnPlanComplete fires when the line is fully solved or failed.
	OnPlanComplete(ctx context.Context, problems, cacheHits int, duration time.Duration, err error)
	// OnSearch fires for every problem that missed the cache. Searches of
	// one line run as a single batch and share its duration.
	OnSearch(ctx context.Context, problem string, found bool, duration time.Duration)
}

// CacheHooks receives solution cache events. keyType names the kind of
// entry, currently always "solution".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events for outgoing dataset requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires on transport failures; non-2xx responses go to OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPlanHooks ignores every event. Embed it to implement a subset.
type NoopPlanHooks struct{}

func (NoopPlanHooks) OnPlanStart(context.Context, int)                               {}
func (NoopPlanHooks) OnPlanComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPlanHooks) OnSearch(context.Context, string, bool, time.Duration)          {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// slot holds one registered implementation. Boxing the interface keeps
// atomic.Pointer usable with interface values.
type slot[T any] struct{ p atomic.Pointer[T] }

func (s *slot[T]) load(fallback T) T {
	if v := s.p.Load(); v != nil {
		return *v
	}
	return fallback
}

func (s *slot[T]) store(v T) { s.p.Store(&v) }

var (
	planSlot  slot[PlanHooks]
	cacheSlot slot[CacheHooks]
	httpSlot  slot[HTTPHooks]
)

// SetPlanHooks installs h. A nil h is ignored.
func SetPlanHooks(h PlanHooks) {
	if h != nil {
		planSlot.store(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(h)
	}
}

// Install registers h for every event category it implements.
func Install(h any) {
	if p, ok := h.(PlanHooks); ok {
		SetPlanHooks(p)
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
	}
	if x, ok := h.(HTTPHooks); ok {
		SetHTTPHooks(x)
	}
}

// Plan returns the installed planner hooks.
func Plan() PlanHooks { return planSlot.load(NoopPlanHooks{}) }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheSlot.load(NoopCacheHooks{}) }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load(NoopHTTPHooks{}) }

// Reset uninstalls every hook. Tests use it to restore the defaults.
func Reset() {
	planSlot.p.Store(nil)
	cacheSlot.p.Store(nil)
	httpSlot.p.Store(nil)
}
