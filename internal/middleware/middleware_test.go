package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendcli/internal/config"
	apierrors "attendcli/internal/errors"
	"attendcli/internal/infrastructure"
	"attendcli/internal/shared/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRequestID(t *testing.T) {
	var seen, traceID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		traceID = infrastructure.GetTraceID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, traceID)
		assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "client-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-42", seen)
		assert.Equal(t, "client-42", traceID)
		assert.Equal(t, "client-42", rec.Header().Get("X-Request-Id"))
	})
}

func TestStructuredLogger(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)

	handler := RequestID(StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health?x=1", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, logs.ContainsMessage("request completed"))
	assert.True(t, logs.ContainsAttr("status", int64(http.StatusTeapot)))
	assert.True(t, logs.ContainsAttr("path", "/api/health"))
}

func TestRecoverer(t *testing.T) {
	errorHandler := apierrors.NewErrorHandler(discardLogger(), false)
	handler := RequestID(Recoverer(errorHandler)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, apierrors.NewErrorHandler(discardLogger(), false), discardLogger())
	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), apierrors.CodeRateLimited)
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantCode   int
	}{
		{"any origin", nil, "http://dash.local", http.MethodGet, "http://dash.local", http.StatusOK},
		{"listed origin", []string{"http://dash.local"}, "http://dash.local", http.MethodGet, "http://dash.local", http.StatusOK},
		{"unlisted origin", []string{"http://dash.local"}, "http://evil.local", http.MethodGet, "", http.StatusOK},
		{"preflight", []string{"*"}, "http://dash.local", http.MethodOptions, "http://dash.local", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(CORSConfig{AllowedOrigins: tt.allowed})(ok)

			req := httptest.NewRequest(tt.method, "/api/attendance/summary", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestOTelMiddlewareRoutePattern(t *testing.T) {
	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		ServiceName:     "attendcli-test",
		TracesExporter:  "none",
		MetricsExporter: "none",
	}, "test", discardLogger())
	require.NoError(t, err)

	otelMW, err := NewOTelMiddleware(providers)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(otelMW.Handler)
	r.Get("/employees/{name}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/employees/{name}", routePattern(r))
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/Alice", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
