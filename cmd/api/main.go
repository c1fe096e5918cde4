package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"page-builder-backend/internal/app"
	"page-builder-backend/internal/config"
	"page-builder-backend/internal/content"
	"page-builder-backend/internal/metrics"
	"page-builder-backend/pkg/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.New()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting page builder backend", nil)
	if envErr != nil {
		logger.Info("No .env file found, using environment variables", nil)
	}

	if cfg.EnableMetrics {
		content.OnParseFailure(metrics.ContentParseFailed)
	}

	application, err := app.New(cfg, app.Options{})
	if err != nil {
		logger.Error(err, "Failed to initialize application", nil)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		logger.Error(err, "Server error occurred, initiating shutdown", nil)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, "Server forced to shutdown", nil)
		os.Exit(1)
	}

	logger.Info("Server exited gracefully", nil)
}
