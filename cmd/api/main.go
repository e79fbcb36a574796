// Package main is the entrypoint for the backend API server.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/stackdemo/backend/internal/config"
	"github.com/stackdemo/backend/internal/metrics"
	"github.com/stackdemo/backend/internal/router"
	"github.com/stackdemo/backend/internal/server"
)

// bindHost is the listen address; the API is reachable on all interfaces.
const bindHost = "0.0.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	if !cfg.IsDevelopment() && cfg.UsesDefaultSecret() {
		logger.Warn("SECRET_KEY is not set; using the development default")
	}

	// Initialize metrics
	var (
		recorder       metrics.Recorder = metrics.NewNoop()
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus()
		recorder = prom
		metricsHandler = prom.Handler()
	}

	// Setup router
	r := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         logger,
		Metrics:        recorder,
		MetricsHandler: metricsHandler,
	})

	// Create and run server
	srv := server.New(
		r,
		bindHost,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"addr", srv.Addr(),
		"env", cfg.AppEnv,
		"debug", cfg.IsDevelopment(),
		"metrics", cfg.MetricsEnabled,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.EffectiveLogLevel()),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
