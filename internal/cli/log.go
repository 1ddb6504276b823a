// Package cli implements the rbdraw command-line interface.
//
// Commands lay out perfect binary trees, draw red-black payload documents,
// build AA trees from keys, serve the HTTP API and manage the cache and
// config file. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - layout: Print node coordinates for a tree of a given depth
//   - render: Draw a payload document as SVG, PNG, PDF, JSON or DOT
//   - aa: Insert keys into an AA tree and draw it
//   - tui: Build an AA tree interactively
//   - serve: Run the HTTP API
//   - config, cache: Manage the config file and the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// also attached to the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with short wall-clock timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a step took, e.g. "Computed 15 slots (1ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx. Commands read it back with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
