// Package server exposes the layout and render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness check, always "ok"
//	GET  /v1/layout            layout coordinates as JSON
//	POST /v1/render?format=svg render a payload document
//	GET  /metrics              Prometheus metrics, when configured
//
// Layout parameters are passed as query parameters (depth, radius,
// level_height, spacing, x, y, margin, scale). Depth is capped at
// DefaultMaxDepth unless WithMaxDepth raises it. Omitted parameters fall back to
// the server defaults. Errors are JSON objects carrying the error code:
//
//	{"code": "INVALID_DEPTH", "error": "depth must be at least 1, got 0", "request_id": "..."}
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
)

// Server timeouts.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// MaxBodyBytes bounds the size of a render request body.
const MaxBodyBytes = 1 << 20

// DefaultMaxDepth is the deepest tree a request may ask for unless
// WithMaxDepth says otherwise. Depth 12 is 4095 slots.
const DefaultMaxDepth = 12

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	metrics  http.Handler
	maxDepth int
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithDefaults sets the options used for parameters a request leaves out.
func WithDefaults(o pipeline.Options) Option { return func(s *Server) { s.defaults = o } }

// WithMaxDepth caps the tree depth a request may ask for. Values outside
// [1, layout.MaxDepth] are clamped.
func WithMaxDepth(d int) Option {
	return func(s *Server) { s.maxDepth = min(max(d, 1), layout.MaxDepth) }
}

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

// New builds a server around runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{runner: runner, logger: log.Default(), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(s)
	}
	s.defaults.Logger = s.logger
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Code:      "METHOD_NOT_ALLOWED",
			Error:     r.Method + " is not allowed on " + r.URL.Path,
			RequestID: RequestID(r.Context()),
		})
	})

	r.Get("/healthz", handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
