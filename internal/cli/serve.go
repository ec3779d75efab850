package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/plainspeak/plainspeak/internal/runtime"
	httpadapter "github.com/plainspeak/plainspeak/pkg/adapters/http"
	"github.com/plainspeak/plainspeak/pkg/observability"
	"github.com/plainspeak/plainspeak/pkg/vars"
)

// ServeOptions configures the HTTP server command.
type ServeOptions struct {
	RunOptions
	Port    int
	Metrics bool
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := createLogger(opts.Debug)
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.RunOptions = opts.RunOptions.merge(cfg)

	var metrics runtime.Metrics
	serverOpts := []httpadapter.ServerOption{httpadapter.WithLogger(logger)}
	if opts.Metrics {
		registry := prometheus.NewRegistry()
		metrics = observability.NewCollector(registry)
		serverOpts = append(serverOpts, httpadapter.WithMetricsRegistry(registry))
	}

	deps := newEngineDeps(cfg, opts.RunOptions, logger, metrics)
	sessions := newSessionManager(opts.RunOptions, logger)

	factory := func(store *vars.Store) httpadapter.Engine {
		return deps.factory(store)
	}
	handler := httpadapter.NewHandler(factory, sessions, deps.catalog, deps.usages, serverOpts...)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
