// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stackdemo/backend/internal/config"
	"github.com/stackdemo/backend/internal/handler/dto"
	"github.com/stackdemo/backend/internal/model"
)

const (
	// ServiceName is reported by the health endpoint.
	ServiceName = "backend"
	// Version is the API version reported by the root endpoint.
	Version = "1.0.0"
	// ReportedPort is the port advertised by /api/status. It is a fixed
	// value and does not follow the PORT the server actually binds.
	ReportedPort = 5000
)

// Handler serves the info endpoints and the router fallbacks.
type Handler struct {
	environment string
	now         func() time.Time
}

// New creates a new Handler from the startup configuration.
func New(cfg *config.Config) *Handler {
	return &Handler{
		environment: cfg.AppEnv,
		now:         time.Now,
	}
}

// Home reports that the API is up.
// GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HomeResponse{
		Message:   "Backend API is running",
		Version:   Version,
		Timestamp: model.NewTimestamp(h.now()),
	})
}

// Status reports the runtime environment.
// GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.StatusResponse{
		Status:      "running",
		Environment: h.environment,
		Port:        ReportedPort,
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here means the client went away.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}
