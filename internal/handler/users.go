package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/stackdemo/backend/internal/handler/dto"
	"github.com/stackdemo/backend/internal/metrics"
	"github.com/stackdemo/backend/internal/middleware"
	"github.com/stackdemo/backend/internal/model"
)

// Errors returned while reading a create-user request.
var (
	ErrMissingFields = errors.New("name and email are required")
	ErrMalformedBody = errors.New("malformed JSON body")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// UserHandler handles HTTP requests for the users collection.
type UserHandler struct {
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(recorder metrics.Recorder, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

// List handles GET /api/users.
// The list is fixed; nothing a client does changes it.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.SeedUsers())
}

// Create handles POST /api/users.
// The user is not stored: the record is echoed back with id 3.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateUser(r.Body)
	if err != nil {
		h.handleRequestError(w, r, err)
		return
	}

	user := model.NewCreatedUser(req.Name, req.Email, h.now())
	h.metrics.IncUserCreated()

	h.logger.Debug("user_created",
		"request_id", middleware.GetRequestID(r.Context()),
		"user_id", user.ID,
	)

	writeJSON(w, http.StatusCreated, user)
}

// handleRequestError maps decode errors to HTTP responses.
func (h *UserHandler) handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	switch {
	case errors.Is(err, ErrMissingFields):
		h.metrics.IncUserRejected("missing_fields")
		writeError(w, http.StatusBadRequest, "Name and email are required")
	case errors.Is(err, ErrBodyTooLarge):
		h.metrics.IncUserRejected("body_too_large")
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, ErrMalformedBody):
		h.metrics.IncUserRejected("malformed_body")
		h.logger.Debug("malformed_body", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, "Malformed JSON body")
	default:
		h.logger.Error("internal_error", "request_id", requestID, "error", err)
		writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// decodeCreateUser reads a create-user body.
// An absent, empty or null body and missing or empty fields yield ErrMissingFields;
// anything that is not a single JSON object yields ErrMalformedBody.
// Field values of any JSON type are accepted and echoed as sent.
func decodeCreateUser(body io.Reader) (dto.CreateUserRequest, error) {
	if body == nil {
		return dto.CreateUserRequest{}, ErrMissingFields
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return dto.CreateUserRequest{}, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return dto.CreateUserRequest{}, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return dto.CreateUserRequest{}, ErrMissingFields
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var req *dto.CreateUserRequest
	if err := dec.Decode(&req); err != nil {
		return dto.CreateUserRequest{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return dto.CreateUserRequest{}, fmt.Errorf("%w: trailing data after object", ErrMalformedBody)
	}

	if req == nil || isEmptyValue(req.Name) || isEmptyValue(req.Email) {
		return dto.CreateUserRequest{}, ErrMissingFields
	}

	return *req, nil
}

// isEmptyValue reports whether a field counts as absent: missing, null,
// false, zero, or an empty string, array or object.
// Whitespace inside a string is content, not emptiness.
func isEmptyValue(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}

	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
