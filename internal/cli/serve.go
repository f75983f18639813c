package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/parley"
	"github.com/aretw0/parley/internal/adapters/httpapi"
	"github.com/aretw0/parley/internal/logging"
	"github.com/aretw0/parley/pkg/observability"
)

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	RunOptions
	Addr string
}

// Serve runs the HTTP turn API until interrupted.
func Serve(opts ServeOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	engineOpts := []parley.Option{
		parley.WithLogger(logger),
		parley.WithLifecycleHooks(metrics.Hooks()),
	}
	engine, err := parley.New(opts.ScenarioPaths, opts.SlotPath, engineOpts...)
	if err != nil {
		return fmt.Errorf("error initializing parley: %w", err)
	}

	manager, closeStore, err := setupPersistence(opts.RunOptions, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	server := httpapi.NewServer(engine, manager,
		httpapi.WithLogger(logger),
		httpapi.WithMetrics(metrics),
	)

	httpServer := &http.Server{
		Addr:              opts.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving turn API", "addr", opts.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
