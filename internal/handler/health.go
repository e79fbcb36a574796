package handler

import (
	"net/http"
	"time"

	"github.com/stackdemo/backend/internal/handler/dto"
	"github.com/stackdemo/backend/internal/model"
)

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Health is a liveness probe endpoint.
// It returns 200 whenever the process can serve requests; there are no
// dependencies to check.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: model.NewTimestamp(h.now()),
		Service:   ServiceName,
	})
}
