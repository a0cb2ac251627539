// Package observability lets the pipeline, the cache and the HTTP server
// report events without depending on a metrics backend.
//
// Each event family has a hook interface with a no-op default. A backend
// is installed once at startup, usually with [Register]:
//
//	prom := observability.NewPrometheus(registry)
//	observability.Register(prom)
//
// and instrumented code reads the current hooks at the call site:
//
//	observability.Pipeline().OnComposeStart(ctx, revision)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives compose and render events.
type PipelineHooks interface {
	OnComposeStart(ctx context.Context, revision string)
	OnComposeComplete(ctx context.Context, revision string, nodeCount int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events. keyType names the kind of
// entry, e.g. "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives served requests. route is the router pattern, not
// the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnComposeStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnComposeComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                              {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)     {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

// update copies the registry, applies fn and swaps the copy in.
func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Register installs h for every hook interface it implements and reports
// whether it implemented any.
func Register(h any) bool {
	matched := false
	update(func(r *registry) {
		if p, ok := h.(PipelineHooks); ok {
			r.pipeline, matched = p, true
		}
		if c, ok := h.(CacheHooks); ok {
			r.cache, matched = c, true
		}
		if x, ok := h.(HTTPHooks); ok {
			r.http, matched = x, true
		}
	})
	return matched
}

// SetPipelineHooks installs pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
