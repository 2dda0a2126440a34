package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "debug", LogFormat: "json", ShutdownTimeoutSeconds: 1},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-characters",
			TokenLifetimeMinutes: 1440,
			BcryptCost:           4,
			AllowAdminSignup:     true,
		},
	}
}

// testServer runs the full router over an in-memory database.
type testServer struct {
	*httptest.Server
	db  *mocks.MemoryDB
	app *application
	t   *testing.T
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	db := mocks.NewMemoryDB()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(cfg, log, db, db.Stores())
	require.NoError(t, err)

	srv := httptest.NewServer(app.handler())
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db, app: app, t: t}
}

// do sends a request with an optional JSON body and bearer token and
// decodes a JSON response into out when out is non-nil.
func (s *testServer) do(method, path, token string, body, out any) int {
	s.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	require.NoError(s.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *testServer) signup(name, email, role string) {
	s.t.Helper()
	status := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
		"userRole": role,
	}, nil)
	require.Equal(s.t, http.StatusCreated, status)
}

func (s *testServer) login(email string) loginResponse {
	s.t.Helper()
	var out loginResponse
	status := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	}, &out)
	require.Equal(s.t, http.StatusOK, status)
	return out
}

type loginResponse struct {
	JWT      string `json:"jwt"`
	UserID   string `json:"userId"`
	UserRole string `json:"userRole"`
}

type taskResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DueDate      string `json:"dueDate"`
	TaskStatus   string `json:"taskStatus"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
}

type commentResponse struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	TaskID   string `json:"taskId"`
	PostedBy string `json:"postedBy"`
}

type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}
