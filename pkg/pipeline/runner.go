package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rbdraw/pkg/cache"
	rbio "github.com/matzehuels/rbdraw/pkg/io"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/observability"
	"github.com/matzehuels/rbdraw/pkg/render"
	"github.com/matzehuels/rbdraw/pkg/render/sink"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute lays out and renders a payload. A zero opts.Depth is inferred
// from the payload.
func (r *Runner) Execute(ctx context.Context, opts Options, nodes render.Nodes) (*Result, error) {
	inferDepth(&opts, nodes)
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	renderStart := time.Now()
	artifacts, renderHit, err := r.render(ctx, opts, nodes, func() (layout.Layout, error) { return l, nil })
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Nodes = len(nodes)
	result.Stats.Edges = countEdges(opts.Depth, nodes)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"nodes", result.Stats.Nodes,
		"edges", result.Stats.Edges,
		"duration", result.Stats.LayoutTime+result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. The cache stores the JSON export of the layout.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if l, _, err := sink.ReadJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return l, true, nil
			}
			// A corrupt entry is recomputed and overwritten.
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeLayout)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Depth)
	start := time.Now()

	l, err := computeLayout(opts)
	hooks.OnLayoutComplete(ctx, opts.Depth, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	r.Logger.Debug("computed layout",
		"depth", opts.Depth,
		"slots", l.Len(),
		"duration", time.Since(start))

	if data, err := sink.RenderJSON(l, nil); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		} else {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		}
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, opts Options) (layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	return l, err
}

// RenderWithCacheInfo renders a payload with caching and returns cache hit
// info. The hit flag is true only when every format came from the cache. A
// zero opts.Depth is inferred from the payload.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, opts Options, nodes render.Nodes) (map[string][]byte, bool, error) {
	inferDepth(&opts, nodes)
	return r.render(ctx, opts, nodes, func() (layout.Layout, error) {
		l, _, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
		return l, err
	})
}

// render checks the artifact cache and only asks getLayout for a layout on a
// miss.
func (r *Runner) render(ctx context.Context, opts Options, nodes render.Nodes, getLayout func() (layout.Layout, error)) (map[string][]byte, bool, error) {
	inferDepth(&opts, nodes)
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	// Validate normalizes colors in place; work on a copy of the caller's map.
	nodes = maps.Clone(nodes)
	if err := nodes.Validate(opts.Depth); err != nil {
		return nil, false, err
	}

	var payload bytes.Buffer
	if err := rbio.WritePayload(&payload, rbio.Document{Depth: opts.Depth, Nodes: nodes}); err != nil {
		return nil, false, fmt.Errorf("serialize payload for cache key: %w", err)
	}
	payloadHash := cache.Hash(payload.Bytes())

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(payloadHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(uniq(opts.Formats)) {
			for range artifacts {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			}
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)

	l, err := getLayout()
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats, len(nodes))
	start := time.Now()

	rendered, err := RenderLayout(ctx, l, nodes, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(payloadHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
// nodes is never modified.
func (r *Runner) Render(ctx context.Context, opts Options, nodes render.Nodes) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, opts, nodes)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func computeLayout(opts Options) (layout.Layout, error) {
	p, err := opts.Params()
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Compute(p)
}

// inferDepth sets a missing depth to the smallest tree holding the payload.
func inferDepth(opts *Options, nodes render.Nodes) {
	if opts.Depth == 0 {
		opts.Depth = max(nodes.Depth(), 1)
	}
}

func uniq(formats []string) map[string]bool {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		seen[f] = true
	}
	return seen
}
