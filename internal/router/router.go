// Package router wires handlers and middleware into the HTTP route table.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stackdemo/backend/internal/config"
	"github.com/stackdemo/backend/internal/handler"
	"github.com/stackdemo/backend/internal/metrics"
	"github.com/stackdemo/backend/internal/middleware"
)

// Dependencies holds everything the router needs. Config is treated as read-only.
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics metrics.Recorder

	// MetricsHandler serves /metrics. Nil leaves the route unregistered.
	MetricsHandler http.Handler
}

// New configures the chi router with all routes and middleware.
func New(deps Dependencies) *chi.Mux {
	cfg := deps.Config
	recorder := deps.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	h := handler.New(cfg)
	healthHandler := handler.NewHealthHandler()
	userHandler := handler.NewUserHandler(recorder, deps.Logger)

	corsCfg := middleware.DefaultCORSConfig()
	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg.AllowedOrigins = origins
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Metrics(recorder))
	r.Use(middleware.Recoverer(deps.Logger, cfg.IsDevelopment()))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/health", healthHandler.Health)
	r.Get("/", h.Home)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.List)
		r.Post("/users", userHandler.Create)
		r.Get("/status", h.Status)
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
