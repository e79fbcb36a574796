package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackdemo/backend/internal/config"
	"github.com/stackdemo/backend/internal/metrics"
	"github.com/stackdemo/backend/internal/middleware"
	"github.com/stackdemo/backend/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:             "development",
		AppPort:            5000,
		CORSAllowedOrigins: "*",
		MaxRequestBodySize: 1 << 20,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *metrics.PrometheusRecorder) {
	t.Helper()

	recorder := metrics.NewPrometheus()
	r := New(Dependencies{
		Config:         cfg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:        recorder,
		MetricsHandler: recorder.Handler(),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, recorder
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestRouter_Health(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var payload struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Service   string `json:"service"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "healthy", payload.Status)
	assert.Equal(t, "backend", payload.Service)

	ts, err := time.Parse(time.RFC3339Nano, payload.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
	assert.True(t, strings.HasSuffix(payload.Timestamp, "Z"))
}

func TestRouter_Home(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	resp, body := do(t, http.MethodGet, srv.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Backend API is running", payload["message"])
	assert.Equal(t, "1.0.0", payload["version"])
	assert.NotEmpty(t, payload["timestamp"])
}

func TestRouter_ListUsers_Idempotent(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	_, first := do(t, http.MethodGet, srv.URL+"/api/users", "")
	do(t, http.MethodPost, srv.URL+"/api/users", `{"name":"Alice","email":"alice@x.com"}`)
	resp, second := do(t, http.MethodGet, srv.URL+"/api/users", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first, second)

	var users []model.User
	require.NoError(t, json.Unmarshal(second, &users))
	require.Len(t, users, 2)
	assert.Equal(t, model.User{ID: 1, Name: "John Doe", Email: "john@example.com"}, users[0])
	assert.Equal(t, model.User{ID: 2, Name: "Jane Smith", Email: "jane@example.com"}, users[1])
}

func TestRouter_CreateUser(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	resp, body := do(t, http.MethodPost, srv.URL+"/api/users", `{"name":"Alice","email":"alice@x.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user model.User
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, 3, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@x.com", user.Email)
	require.NotNil(t, user.CreatedAt)
	assert.WithinDuration(t, time.Now(), user.CreatedAt.Time(), 5*time.Second)
}

func TestRouter_CreateUser_EchoesValuesVerbatim(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	resp, body := do(t, http.MethodPost, srv.URL+"/api/users", `{"name":"   ","email":42}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user map[string]any
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, 3.0, user["id"])
	assert.Equal(t, "   ", user["name"])
	assert.Equal(t, 42.0, user["email"])
}

func TestRouter_CreateUser_Rejected(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	tests := []struct {
		name     string
		body     string
		wantBody string
	}{
		{"missing email", `{"name":"Alice"}`, `{"error":"Name and email are required"}`},
		{"absent body", "", `{"error":"Name and email are required"}`},
		{"malformed json", `{"name":"Alice",`, `{"error":"Malformed JSON body"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/api/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestRouter_CreateUser_BodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRequestBodySize = 16
	srv, _ := newTestServer(t, cfg)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/users", `{"name":"Alice","email":"alice@x.com"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Request body too large"}`, string(body))
}

func TestRouter_Status(t *testing.T) {
	cfg := testConfig()
	cfg.AppEnv = "production"
	cfg.AppPort = 8081
	srv, _ := newTestServer(t, cfg)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/status", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"status":"running","environment":"production","port":5000}`+"\n", string(body))
}

func TestRouter_Fallbacks(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, `{"error":"resource not found"}`},
		{"unknown api path", http.MethodGet, "/api/nope", http.StatusNotFound, `{"error":"resource not found"}`},
		{"wrong method on users", http.MethodDelete, "/api/users", http.StatusMethodNotAllowed, `{"error":"method not allowed"}`},
		{"wrong method on health", http.MethodPost, "/health", http.StatusMethodNotAllowed, `{"error":"method not allowed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, tt.method, srv.URL+tt.path, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/status", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	preflight, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/users", nil)
	require.NoError(t, err)
	preflight.Header.Set("Origin", "http://localhost:3000")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err = http.DefaultClient.Do(preflight)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_RequestIDAndSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	resp, _ := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestRouter_Metrics(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	do(t, http.MethodGet, srv.URL+"/api/users", "")
	do(t, http.MethodPost, srv.URL+"/api/users", `{"name":"Alice","email":"alice@x.com"}`)
	do(t, http.MethodPost, srv.URL+"/api/users", `{"name":"Alice"}`)

	resp, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	text := string(body)
	assert.Contains(t, text, `backend_http_requests_total{code="200",method="GET",route="/api/users"} 1`)
	assert.Contains(t, text, `backend_http_requests_total{code="201",method="POST",route="/api/users"} 1`)
	assert.Contains(t, text, `backend_users_created_total 1`)
	assert.Contains(t, text, `backend_users_rejected_total{reason="missing_fields"} 1`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	r := New(Dependencies{
		Config: testConfig(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	recorder := metrics.NewInMemory()
	r := New(Dependencies{
		Config:  testConfig(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: recorder,
	})
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("unexpected")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	snap := recorder.Snapshot()
	assert.Equal(t, uint64(1), snap.Requests[metrics.RequestKey("/panic", http.MethodGet, http.StatusInternalServerError)])
	assert.Equal(t, uint64(1), snap.RequestDurationCount)
}
