package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rbdraw"

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	gatherer prometheus.Gatherer

	layouts        *prometheus.CounterVec
	layoutDuration prometheus.Histogram
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	renderedNodes  prometheus.Histogram
	cacheEvents    *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	inFlight       prometheus.Gauge
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg *prometheus.Registry) *Prometheus {
	m := &Prometheus{
		gatherer: reg,
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Layouts computed, by outcome.",
		}, []string{"outcome"}),
		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent computing layouts.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Render runs, by format set and outcome.",
		}, []string{"formats", "outcome"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering artifacts.",
			Buckets:   prometheus.DefBuckets,
		}),
		renderedNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_nodes",
			Help:      "Occupied nodes per rendered payload.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes, by key type and event.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache, by key type.",
		}, []string{"key_type"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Served requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.layouts, m.layoutDuration,
		m.renders, m.renderDuration, m.renderedNodes,
		m.cacheEvents, m.cacheBytes,
		m.inFlight, m.requests, m.requestLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Prometheus) OnLayoutStart(context.Context, int) {}

func (m *Prometheus) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	m.layouts.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		m.layoutDuration.Observe(d.Seconds())
	}
}

func (m *Prometheus) OnRenderStart(_ context.Context, _ []string, nodeCount int) {
	m.renderedNodes.Observe(float64(nodeCount))
}

func (m *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	m.renders.WithLabelValues(strings.Join(formats, ","), outcome(err)).Inc()
	if err == nil {
		m.renderDuration.Observe(d.Seconds())
	}
}

func (m *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Prometheus) OnRequest(context.Context, string, string) {
	m.inFlight.Inc()
}

func (m *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
