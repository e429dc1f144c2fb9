package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"attendcli/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "attend.log")
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())

	logger.Info("cleaning started", "rows", 8)
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(content), &entry))
	assert.Equal(t, "cleaning started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 8, entry["rows"])
}

func TestInitializeLoggerOnlyOnce(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)

	second, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "stdout"})
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestInitializeLoggerBadFile(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := InitializeLogger(config.LoggingConfig{
		Output:   "file",
		FilePath: filepath.Join(blocker, "attend.log"),
	})
	assert.Error(t, err)
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: "info"})

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "with trace")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])

	buf.Reset()
	logger.With("component", "cleaner").InfoContext(context.Background(), "without trace")
	assert.NotContains(t, buf.String(), "trace_id")
	assert.Contains(t, buf.String(), `"component":"cleaner"`)
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		info    bool
		warning bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"warn", false, false, true},
		{"warning", false, false, true},
		{"error", false, false, false},
		{"bogus", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, config.LoggingConfig{Level: tt.level})

			logger.Debug("debug message")
			logger.Info("info message")
			logger.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tt.debug, strings.Contains(out, "debug message"))
			assert.Equal(t, tt.info, strings.Contains(out, "info message"))
			assert.Equal(t, tt.warning, strings.Contains(out, "warn message"))
		})
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: "info", Format: "text"})

	logger.Info("loaded", "records", 7)
	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "records=7")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = EnsureTraceID(ctx)
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, 36)

	assert.Equal(t, traceID, GetTraceID(EnsureTraceID(ctx)), "existing trace id is kept")
	assert.NotEqual(t, NewTraceID(), NewTraceID())
}

func TestLoggerHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LoggingConfig{Level: "info"})

	WithError(WithComponent(logger, "summarizer"), errors.New("boom")).Info("failed")
	assert.Contains(t, buf.String(), `"component":"summarizer"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)

	assert.Same(t, logger, WithError(logger, nil))
	assert.NotNil(t, WithComponent(nil, "fallback"))
}

func TestSpanTraceIDInjection(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "clean")
	defer span.End()

	var buf bytes.Buffer
	NewLogger(&buf, config.LoggingConfig{}).InfoContext(ctx, "inside span")
	assert.Contains(t, buf.String(), `"otel_trace_id":"`+span.SpanContext().TraceID().String()+`"`)
}
