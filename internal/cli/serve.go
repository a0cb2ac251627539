package cli

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbkit/internal/server"
	"github.com/matzehuels/thumbkit/pkg/observability"
	"github.com/matzehuels/thumbkit/pkg/render"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		metrics       bool
		maxBody       int64
		renderTimeout time.Duration
		backend       backendFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the thumbnail API over HTTP",
		Long: `Serve the thumbnail API over HTTP.

Routes:
  POST /api/v1/thumbnails?format=svg|png|pdf|json
  POST /api/v1/layouts
  GET  /api/v1/presets
  GET  /healthz
  GET  /metrics

Artifacts are cached on disk by default, or in Redis with --redis-url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend.resolve()
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, backend)
			if err != nil {
				return err
			}
			defer runner.Close()

			measurer, err := c.newMeasurer(backend.fontDir)
			if err != nil {
				return err
			}
			if err := render.Available(); err != nil {
				c.Logger.Warn("png and pdf output disabled", "error", err)
			}

			opts := []server.Option{
				server.WithAddr(addr),
				server.WithMeasurer(measurer),
				server.WithMaxBodyBytes(maxBody),
				server.WithRenderTimeout(renderTimeout),
			}
			if metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				observability.Register(observability.NewPrometheus(reg))
				opts = append(opts, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
			}

			return server.New(runner, c.Logger, opts...).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics at /metrics")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&renderTimeout, "render-timeout", server.DefaultRenderTimeout, "timeout for one render")
	backend.register(cmd)

	return cmd
}
