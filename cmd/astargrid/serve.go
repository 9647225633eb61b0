package main

import (
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid/internal/httpapi"
	"github.com/pdrpinto/astargrid/internal/metrics"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /find-path and GET /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pathCache, err := a.openCache()
			if err != nil {
				return err
			}
			if pathCache != nil {
				defer pathCache.Close()
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			handler := &httpapi.Handler{
				Cache:         pathCache,
				Metrics:       metrics.New(reg),
				Logger:        a.logger,
				HeuristicName: a.cfg.Search.Heuristic,
				BlockedMarker: a.cfg.BlockedMarker(),
				Options:       a.cfg.SearchOptions(a.logger),
			}

			ctx := cmd.Context()
			if err := funcframework.RegisterHTTPFunctionContext(ctx, "/find-path", handler.ServeHTTP); err != nil {
				return err
			}
			metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
			if err := funcframework.RegisterHTTPFunctionContext(ctx, "/metrics", metricsHandler.ServeHTTP); err != nil {
				return err
			}

			a.logger.Info("listening",
				zap.String("host", a.cfg.Server.Host),
				zap.String("port", a.cfg.Server.Port),
				zap.Bool("cache", pathCache != nil),
			)
			return funcframework.StartHostPort(a.cfg.Server.Host, a.cfg.Server.Port)
		},
	}
}
