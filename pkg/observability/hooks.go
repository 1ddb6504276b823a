// Package observability lets the layout pipeline, the caches and the HTTP
// server report events without depending on a metrics backend.
//
// Every hook family starts out as a no-op. The serve command installs the
// Prometheus collectors from [NewPrometheus]:
//
//	m := observability.NewPrometheus(prometheus.NewRegistry())
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//
// and emitters look the current hooks up at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, depth)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives layout and render events from pipeline.Runner.
// Cached results do not produce events.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, depth int)
	OnLayoutComplete(ctx context.Context, depth int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string, nodeCount int)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives lookups and writes. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives request events. route is the matched pattern, not the
// raw path, so label cardinality stays bounded.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string, int)                     {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the installed hooks of one family, falling back to noop.
type slot[T any] struct {
	cur  atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if h := s.cur.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.cur.Store(&h) }

func (s *slot[T]) reset() { s.cur.Store(nil) }

var (
	pipelineSlot = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineSlot.get() }

func Cache() CacheHooks { return cacheSlot.get() }

func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores the no-op hooks. Tests that install hooks call it in
// cleanup.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
