package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"attendcli/internal/config"
)

// logging is the process-wide logger set up by InitializeLogger
var logging struct {
	once   sync.Once
	logger *slog.Logger

	mu   sync.Mutex
	file *os.File
}

type contextKey string

// TraceIDContextKey stores the run or request trace ID in a context
const TraceIDContextKey contextKey = "trace_id"

// InitializeLogger builds the global logger from cfg and installs it as the
// slog default. Only the first call has any effect.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	var err error
	logging.once.Do(func() {
		var w io.Writer
		w, err = logOutput(cfg)
		if err != nil {
			return
		}
		logging.logger = NewLogger(w, cfg)
		slog.SetDefault(logging.logger)
	})
	return logging.logger, err
}

// GetLogger returns the global logger, or slog.Default before initialization
func GetLogger() *slog.Logger {
	if logging.logger == nil {
		return slog.Default()
	}
	return logging.logger
}

// logOutput resolves cfg.Output. Console output goes to stderr so that
// command results printed on stdout stay machine readable.
func logOutput(cfg config.LoggingConfig) (io.Writer, error) {
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		return os.Stdout, nil
	case "file", "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logging.mu.Lock()
		logging.file = file
		logging.mu.Unlock()

		if strings.EqualFold(cfg.Output, "both") {
			return io.MultiWriter(os.Stderr, file), nil
		}
		return file, nil
	default:
		return os.Stderr, nil
	}
}

// NewLogger builds a logger writing to w that injects trace_id from context.
// JSON is the default format; "text" selects the logfmt-style handler.
func NewLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Development,
		Level:     parseLogLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(&traceHandler{Handler: handler})
}

// traceHandler adds trace_id from the context and, inside a recorded
// OpenTelemetry span, the span's otel_trace_id.
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := GetTraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	if spanTrace := TraceIDFromContext(ctx); spanTrace != "" {
		r.AddAttrs(slog.String("otel_trace_id", spanTrace))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}

// parseLogLevel accepts slog level names plus "warning"; anything else is info
func parseLogLevel(level string) slog.Level {
	if strings.EqualFold(level, "warning") {
		level = "warn"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// WithTraceID adds a trace ID to the context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID retrieves the trace ID from context
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}

// CloseLogFile closes the log file opened by InitializeLogger, if any
func CloseLogFile() error {
	logging.mu.Lock()
	defer logging.mu.Unlock()

	if logging.file == nil {
		return nil
	}
	err := logging.file.Close()
	logging.file = nil
	return err
}

// ResetLoggerForTesting forgets the global logger so tests can initialize it again
func ResetLoggerForTesting() {
	CloseLogFile()
	logging.logger = nil
	logging.once = sync.Once{}
}

// openLogFile opens filePath for appending, creating it and its directory
func openLogFile(filePath string) (*os.File, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filePath, err)
	}
	return file, nil
}
