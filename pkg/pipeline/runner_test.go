package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/observability"
	"github.com/matzehuels/rbdraw/pkg/render"
	"github.com/matzehuels/rbdraw/pkg/render/sink"
)

// memCache is an in-memory cache.Cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

// countingHooks counts layout and render runs.
type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts int
	renders int
}

func (h *countingHooks) OnLayoutComplete(context.Context, int, time.Duration, error) {
	h.mu.Lock()
	h.layouts++
	h.mu.Unlock()
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	h.renders++
	h.mu.Unlock()
}

func withHooks(t *testing.T) *countingHooks {
	t.Helper()
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

func sampleNodes() render.Nodes {
	return render.Nodes{
		1: {Color: render.Black, Text: "8"},
		2: {Color: render.Black, Text: "6"},
		3: {Color: render.Black, Text: "9"},
		5: {Color: render.Red, Text: "7"},
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner(nil, nil, nil) = %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestComputeLayoutCaches(t *testing.T) {
	ctx := context.Background()
	hooks := withHooks(t)
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Depth: 4, Radius: 10, LevelHeight: Float(50), Spacing: "constant:20"}

	first, hit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("ComputeLayoutWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first call should miss")
	}

	second, hit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("ComputeLayoutWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("second call should hit")
	}
	if hooks.layouts != 1 {
		t.Errorf("layout computed %d times, want 1", hooks.layouts)
	}

	a, b := first.Points(), second.Points()
	if len(a) != len(b) {
		t.Fatalf("cached layout has %d points, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("point %d = %v, want %v", i+1, b[i], a[i])
		}
	}
	if second.Radius() != 10 || second.LevelHeight() != 50 {
		t.Errorf("cached layout lost its parameters: r=%v v=%v", second.Radius(), second.LevelHeight())
	}

	opts.Refresh = true
	if _, hit, _ := r.ComputeLayoutWithCacheInfo(ctx, opts); hit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestComputeLayoutRecomputesCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Depth: 2}
	opts.SetDefaults()

	key := r.Keyer.LayoutKey(opts.LayoutKeyOpts())
	c.data[key] = []byte("not json")

	l, hit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil || hit {
		t.Fatalf("ComputeLayoutWithCacheInfo() = hit %v, err %v", hit, err)
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
	if _, _, err := sink.ReadJSON(c.data[key]); err != nil {
		t.Errorf("corrupt entry was not overwritten: %v", err)
	}
}

func TestRenderInfersDepth(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	artifacts, err := r.Render(context.Background(), Options{Formats: []string{FormatSVG, FormatJSON}}, sampleNodes())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	svg := string(artifacts[FormatSVG])
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("svg has %d circles, want 4", got)
	}
	if got := strings.Count(svg, "<line"); got != 3 {
		t.Errorf("svg has %d lines, want 3", got)
	}

	l, nodes, err := sink.ReadJSON(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if l.Depth() != 3 {
		t.Errorf("inferred depth = %d, want 3", l.Depth())
	}
	if nodes[5].Color != render.Red || nodes[5].Text != "7" {
		t.Errorf("node 5 = %+v", nodes[5])
	}
}

func TestRenderLeavesPayloadUntouched(t *testing.T) {
	nodes := render.Nodes{
		1: {Color: "B", Text: "8"},
		2: {Color: " Red ", Text: "4"},
	}
	r := NewRunner(nil, nil, nil)
	artifacts, err := r.Render(context.Background(), Options{Depth: 2, Formats: []string{FormatJSON}}, nodes)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if nodes[1].Color != "B" || nodes[2].Color != " Red " {
		t.Errorf("caller payload modified: %+v", nodes)
	}
	_, drawn, err := sink.ReadJSON(artifacts[FormatJSON])
	if err != nil {
		t.Fatal(err)
	}
	if drawn[1].Color != render.Black || drawn[2].Color != render.Red {
		t.Errorf("drawn colors not normalized: %+v", drawn)
	}
}

func TestRenderCaches(t *testing.T) {
	ctx := context.Background()
	hooks := withHooks(t)
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Depth: 3, Formats: []string{FormatSVG, FormatDOT}}

	first, hit, err := r.RenderWithCacheInfo(ctx, opts, sampleNodes())
	if err != nil || hit {
		t.Fatalf("first render: hit %v, err %v", hit, err)
	}
	second, hit, err := r.RenderWithCacheInfo(ctx, opts, sampleNodes())
	if err != nil || !hit {
		t.Fatalf("second render: hit %v, err %v", hit, err)
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first[f], second[f]) {
			t.Errorf("cached %s differs", f)
		}
	}
	if hooks.renders != 1 || hooks.layouts != 1 {
		t.Errorf("renders = %d, layouts = %d; want 1, 1", hooks.renders, hooks.layouts)
	}

	// A different payload misses but reuses the cached layout.
	other := sampleNodes()
	other[5] = render.Node{Color: render.Black, Text: "7"}
	if _, hit, err := r.RenderWithCacheInfo(ctx, opts, other); err != nil || hit {
		t.Fatalf("changed payload: hit %v, err %v", hit, err)
	}
	if hooks.renders != 2 || hooks.layouts != 1 {
		t.Errorf("renders = %d, layouts = %d; want 2, 1", hooks.renders, hooks.layouts)
	}

	// A new format on the same payload is a miss.
	opts.Formats = append(opts.Formats, FormatJSON)
	if _, hit, _ := r.RenderWithCacheInfo(ctx, opts, sampleNodes()); hit {
		t.Error("uncached format should miss")
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		opts  Options
		nodes render.Nodes
		code  errors.Code
	}{
		{"index beyond depth", Options{Depth: 2}, render.Nodes{4: {Color: render.Red}}, errors.ErrCodeInvalidIndex},
		{"bad color", Options{}, render.Nodes{1: {Color: "green"}}, errors.ErrCodeInvalidColor},
		{"bad format", Options{Formats: []string{"bmp"}}, sampleNodes(), errors.ErrCodeInvalidFormat},
		{"bad spacing", Options{Spacing: "nope"}, sampleNodes(), errors.ErrCodeInvalidSpacing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(ctx, tt.opts, tt.nodes)
			if !errors.Is(err, tt.code) {
				t.Errorf("Render() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderEmptyPayload(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	artifacts, err := r.Render(context.Background(), Options{Formats: []string{FormatSVG}}, render.Nodes{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if svg := string(artifacts[FormatSVG]); strings.Contains(svg, "<circle") || strings.Contains(svg, "<line") {
		t.Errorf("empty payload drew shapes:\n%s", svg)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Formats: []string{FormatDOT}}

	result, err := r.Execute(context.Background(), opts, sampleNodes())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Stats.Nodes != 4 || result.Stats.Edges != 3 {
		t.Errorf("stats = %+v, want 4 nodes and 3 edges", result.Stats)
	}
	if result.Layout.Depth() != 3 {
		t.Errorf("layout depth = %d, want 3", result.Layout.Depth())
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("first run cache info = %+v", result.CacheInfo)
	}
	dot := string(result.Artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "graph G {") || !strings.Contains(dot, "n2 -- n5;") {
		t.Errorf("unexpected DOT:\n%s", dot)
	}

	result, err = r.Execute(context.Background(), opts, sampleNodes())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !result.CacheInfo.LayoutHit || !result.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v", result.CacheInfo)
	}

	if _, err := r.Execute(context.Background(), Options{Depth: 1}, render.Nodes{3: {Color: render.Red}}); !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("Execute() with out-of-range node error = %v", err)
	}
}
