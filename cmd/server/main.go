package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/seokhojung/befunweb/internal/app"
	"github.com/seokhojung/befunweb/internal/config"
	pkgconfig "github.com/seokhojung/befunweb/pkg/config"
	"github.com/seokhojung/befunweb/pkg/logger"
)

func main() {
	// Local development reads a .env file; production relies on the environment.
	if os.Getenv("ENVIRONMENT") != "production" {
		if err := pkgconfig.LoadDotEnv(); err != nil {
			slog.Error("failed to load .env", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger.
	log := logger.New("catalog-service", cfg.LogLevel)
	log.Info("starting catalog service",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
		slog.String("image_probe_mode", cfg.ImageProbeMode),
	)

	// Create the application with all dependencies wired.
	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create a context that is cancelled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Run the application. This blocks until shutdown.
	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("catalog service stopped")
}
