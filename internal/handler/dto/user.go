// Package dto provides Data Transfer Objects for API requests and responses.
// Field order in each struct is the key order on the wire.
package dto

import (
	"encoding/json"

	"github.com/stackdemo/backend/internal/model"
)

// CreateUserRequest represents the request body for creating a user.
// Values are kept as raw JSON: only their presence is checked.
type CreateUserRequest struct {
	Name  json.RawMessage `json:"name"`
	Email json.RawMessage `json:"email"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp model.Timestamp `json:"timestamp"`
	Service   string          `json:"service"`
}

// HomeResponse represents the root info response.
type HomeResponse struct {
	Message   string          `json:"message"`
	Version   string          `json:"version"`
	Timestamp model.Timestamp `json:"timestamp"`
}

// StatusResponse represents the runtime status response.
type StatusResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Port        int    `json:"port"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}
