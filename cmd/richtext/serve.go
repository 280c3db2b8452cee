package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/collecty/richtext/internal/cli"
	httpAdapter "github.com/collecty/richtext/pkg/adapters/http"
	"github.com/collecty/richtext/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Starts the renderer as an HTTP service: POST /render and /validate for ad-hoc
documents, /content for stored records, /events for change notifications and
/metrics for Prometheus.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), a)
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().String("host", "", "Interface to bind")
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = a.v.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	return cmd
}

func runServe(parent context.Context, a *app) error {
	logger := a.logger
	ctx := cli.NewSignalContext(parent)
	defer ctx.Cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	store, closeStore, err := cli.NewStore(a.cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	renderer := cli.NewRenderer(a.cfg.Render, logger, metrics.Hooks())
	srv, err := httpAdapter.NewServer(renderer,
		httpAdapter.WithStore(store),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
	if err != nil {
		return err
	}
	if err := srv.Watch(ctx); err != nil {
		logger.Warn("Change events limited to this process", "err", err)
	}

	httpServer := &http.Server{
		Addr:    a.cfg.Addr(),
		Handler: srv.Handler(),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting richtext server", "addr", httpServer.Addr, "store", a.cfg.Store.Backend)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown", "signal", ctx.Signal())

		// Give outstanding requests a deadline for completion.
		timeout := a.cfg.Server.ShutdownTimeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", timeout, "err", err)
			if err := httpServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}
