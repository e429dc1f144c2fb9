package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NewTraceID returns a random UUID correlating the log lines of one CLI run or HTTP request
func NewTraceID() string {
	return uuid.NewString()
}

// EnsureTraceID returns ctx unchanged when it already carries a trace ID
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, NewTraceID())
}

// WithComponent tags logger with the pipeline stage or command emitting the records.
// A nil logger falls back to the global one.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}

// WithError attaches err to every record of the returned logger
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With(slog.String("error", err.Error()))
}
