// Package observability routes pipeline, cache and HTTP events to whatever
// the binary registers at startup.
//
// The geometry packages carry no instrumentation. The generation pipeline,
// the caches and the API server report through [Pipeline], [Cache] and
// [HTTP], which return no-op receivers until something is registered:
//
//	observability.Register(observability.NewLogHooks(logger))
//	defer observability.Reset()
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from track computation and code generation.
type PipelineHooks interface {
	OnTracksStart(ctx context.Context, cols, rows int)
	OnTracksComplete(ctx context.Context, duration time.Duration, err error)
	OnGenerateStart(ctx context.Context, formats []string, items int)
	OnGenerateComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups. kind is the key namespace, e.g. "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives API server events. route is the matched chi pattern
// when one exists, else the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
	OnError(ctx context.Context, method, route string, err error)
}

// Hooks is satisfied by receivers that want every event, such as [LogHooks].
type Hooks interface {
	PipelineHooks
	CacheHooks
	HTTPHooks
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnTracksStart(context.Context, int, int)                             {}
func (NoopPipelineHooks) OnTracksComplete(context.Context, time.Duration, error)              {}
func (NoopPipelineHooks) OnGenerateStart(context.Context, []string, int)                      {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

func (r *registry) reset() {
	r.mu.Lock()
	r.pipeline, r.cache, r.http = NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}
	r.mu.Unlock()
}

var global = func() *registry {
	r := &registry{}
	r.reset()
	return r
}()

// Register installs h for all three event families.
func Register(h Hooks) {
	if h == nil {
		return
	}
	global.mu.Lock()
	global.pipeline, global.cache, global.http = h, h, h
	global.mu.Unlock()
}

// SetPipelineHooks replaces the pipeline receiver. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	global.mu.Lock()
	global.pipeline = h
	global.mu.Unlock()
}

// SetCacheHooks replaces the cache receiver. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	global.mu.Lock()
	global.cache = h
	global.mu.Unlock()
}

// SetHTTPHooks replaces the HTTP receiver. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	global.mu.Lock()
	global.http = h
	global.mu.Unlock()
}

func Pipeline() PipelineHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.pipeline
}

func Cache() CacheHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.cache
}

func HTTP() HTTPHooks {
	global.mu.RLock()
	defer global.mu.RUnlock()
	return global.http
}

// Reset restores the no-op receivers.
func Reset() { global.reset() }
