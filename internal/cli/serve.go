package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbdraw/pkg/observability"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
	"github.com/matzehuels/rbdraw/pkg/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		metrics  bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

Routes:
  GET  /healthz             liveness check
  GET  /v1/layout?depth=N   layout coordinates as JSON
  POST /v1/render?format=F  draw the payload document in the body
  GET  /metrics             Prometheus metrics (with --metrics)

Defaults for omitted query parameters come from the config file. The server
stops gracefully on SIGINT or SIGTERM. Requests deeper than --max-depth are
rejected with 400.`,
		Example: `  rbdraw serve --addr :8080 --metrics
  rbdraw serve --cache-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := []server.Option{
				server.WithLogger(c.Logger),
				server.WithDefaults(pipeline.FromConfig(c.Config)),
				server.WithMaxDepth(maxDepth),
			}
			metricsRoute := "off"
			if metrics {
				opts = append(opts, server.WithMetrics(installMetrics().Handler()))
				metricsRoute = "/metrics"
			}

			printInfo("Serving the %s API", appName)
			printKeyValue("Address", StyleHighlight.Render(addr))
			printKeyValue("Metrics", metricsRoute)
			printKeyValue("Max depth", fmt.Sprint(maxDepth))
			return server.New(runner, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "expose Prometheus metrics at /metrics")
	cmd.Flags().IntVar(&maxDepth, "max-depth", server.DefaultMaxDepth, "deepest tree a request may ask for")

	return cmd
}

// installMetrics registers Prometheus collectors as the process-wide hooks.
func installMetrics() *observability.Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := observability.NewPrometheus(reg)
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
	return m
}
