package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/clinicguard/clinicguard/internal/app"
	"github.com/clinicguard/clinicguard/internal/config"
)

// RunServer starts the HTTP server with graceful shutdown support.
// Loads configuration, initializes the DI container, starts the audit recorder
// workers and the Gin HTTP server. Blocks until receiving SIGINT/SIGTERM or
// encountering a fatal error. On shutdown the servers stop accepting requests
// first, then the recorder drains its queue so in-flight audit entries are
// not lost.
func RunServer(ctx context.Context, version string) error {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// Get Metrics server from container
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	// Get the audit recorder; its workers run for the lifetime of the process
	recorder, err := container.AuditRecorder()
	if err != nil {
		return fmt.Errorf("failed to initialize audit recorder: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The recorder gets its own cancellation so it can drain after the HTTP
	// servers have stopped producing entries.
	recorderCtx, recorderCancel := context.WithCancel(context.Background())
	defer recorderCancel()

	recorderDone := make(chan struct{})
	go func() {
		defer close(recorderDone)
		if err := recorder.Run(recorderCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("audit recorder stopped", slog.Any("error", err))
		}
	}()

	// Start servers; the group context ends on the first server error or when
	// the signal context is cancelled.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.Start(groupCtx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		group.Go(func() error {
			if err := metricsServer.Start(groupCtx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	shutdown := func() error {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
		defer shutdownCancel()

		var shutdownErrors []error

		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}

		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}

		// Servers stopped: no more entries can be produced. Stop the recorder
		// and wait for it to flush the queue.
		recorderCancel()
		select {
		case <-recorderDone:
		case <-shutdownCtx.Done():
			shutdownErrors = append(shutdownErrors, fmt.Errorf("audit recorder drain timed out"))
		}

		// Servers stopped: collect any startup error from the group.
		if err := group.Wait(); err != nil {
			shutdownErrors = append(shutdownErrors, err)
		}

		return errors.Join(shutdownErrors...)
	}

	// Wait for shutdown signal or the first server error.
	<-groupCtx.Done()
	logger.Info("shutting down")
	return shutdown()
}
