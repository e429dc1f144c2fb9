package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics records cleaning pipeline measurements
type PipelineMetrics struct {
	recordsCleaned metric.Int64Counter
	cellsMissing   metric.Int64Counter
	stageDuration  metric.Float64Histogram
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	recordsCleaned, err := meter.Int64Counter(
		"attendance_records_cleaned_total",
		metric.WithDescription("Total number of table rows passed through the cleaner"),
	)
	if err != nil {
		return nil, err
	}

	cellsMissing, err := meter.Int64Counter(
		"attendance_cells_missing_total",
		metric.WithDescription("Total number of missing cells after cleaning"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"attendance_pipeline_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		recordsCleaned: recordsCleaned,
		cellsMissing:   cellsMissing,
		stageDuration:  stageDuration,
	}, nil
}

// RecordsCleaned counts cleaned rows of a table
func (m *PipelineMetrics) RecordsCleaned(ctx context.Context, table string, rows int) {
	m.recordsCleaned.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("table", table)))
}

// CellsMissing counts missing cells of a table column
func (m *PipelineMetrics) CellsMissing(ctx context.Context, table, column string, cells int) {
	m.cellsMissing.Add(ctx, int64(cells), metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("column", column),
	))
}

// StageDuration records how long a pipeline stage took
func (m *PipelineMetrics) StageDuration(ctx context.Context, stage string, d time.Duration) {
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// HTTPMetrics records dashboard request measurements
type HTTPMetrics struct {
	RequestsTotal   metric.Int64Counter
	RequestDuration metric.Float64Histogram
}

// NewHTTPMetrics creates the HTTP instruments on meter
func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	requestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{
		RequestsTotal:   requestsTotal,
		RequestDuration: requestDuration,
	}, nil
}

// Record counts one request and its duration
func (m *HTTPMetrics) Record(ctx context.Context, method, route string, status int, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	m.RequestsTotal.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, d.Seconds(), attrs)
}
