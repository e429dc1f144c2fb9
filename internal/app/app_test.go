package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendcli/internal/config"
	"attendcli/internal/shared/testutil"
)

func testConfig(t *testing.T, withData bool) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if withData {
		testutil.WriteCleanFixture(t, dir)
	}

	cfg := config.Default()
	cfg.Paths.BaseDir = dir
	cfg.Paths.DataDir = dir
	cfg.Security.RateLimit.Enabled = false
	cfg.Server.ShutdownTimeout = 2 * time.Second
	return cfg
}

func serve(t *testing.T, a *Application, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewApplication(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplication(testConfig(t, true), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })

	assert.NotNil(t, a.Router)
	assert.NotNil(t, a.Server)
	assert.Equal(t, ":8080", a.Server.Addr)
	assert.Equal(t, 15*time.Second, a.Server.ReadTimeout)

	loaded, _ := a.Attendance.Loaded()
	assert.True(t, loaded)
}

func TestApplicationRoutes(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplication(testConfig(t, true), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })

	tests := []struct {
		name   string
		method string
		target string
		status int
		body   string
	}{
		{name: "readiness", method: http.MethodGet, target: "/api/health", status: http.StatusOK, body: `"ready"`},
		{name: "liveness", method: http.MethodGet, target: "/api/health/live", status: http.StatusOK, body: `"alive"`},
		{name: "version", method: http.MethodGet, target: "/api/version", status: http.StatusOK, body: `"api_version"`},
		{name: "summary", method: http.MethodGet, target: "/api/attendance/summary", status: http.StatusOK, body: `"total_employees"`},
		{name: "metrics", method: http.MethodGet, target: "/metrics", status: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, target: "/api/nope", status: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, target: "/api/health", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, a, tt.method, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.body != "" {
				assert.Contains(t, rec.Body.String(), tt.body)
			}
		})
	}
}

func TestApplicationMiddlewareHeaders(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplication(testConfig(t, true), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })

	rec := serve(t, a, http.MethodGet, "/api/health/live")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}

func TestNewApplication_WithoutData(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	a, err := NewApplication(testConfig(t, false), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.OTelProviders.Shutdown(context.Background()) })

	assert.True(t, handler.ContainsMessage("Initial data load failed, dashboard starts without data"))

	rec := serve(t, a, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "not_ready", status["status"])

	rec = serve(t, a, http.MethodGet, "/api/attendance/summary")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewApplication_BadTelemetry(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	cfg := testConfig(t, true)
	cfg.Telemetry.TracesExporter = "jaeger"

	_, err := NewApplication(cfg, logger)
	assert.Error(t, err)
}

func TestApplicationServe(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplication(testConfig(t, true), logger)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/health/live"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
