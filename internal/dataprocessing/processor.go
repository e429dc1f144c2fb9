package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"attendcli/pkg/contracts/domain"
)

const tracerName = "attendcli/dataprocessing"

// TableCleaner applies column rules to a copy of a table
type TableCleaner struct {
	source   string
	required []string
	rules    []ColumnRule
}

// NewAttendanceCleaner creates the attendance table cleaner
func NewAttendanceCleaner() *TableCleaner {
	return &TableCleaner{source: SourceAttendance, required: domain.AttendanceColumns, rules: AttendanceRules}
}

// NewMasterCleaner creates the employee master table cleaner
func NewMasterCleaner() *TableCleaner {
	return &TableCleaner{source: SourceMaster, required: domain.MasterColumns, rules: MasterRules}
}

// Process returns a cleaned copy with the same rows in the same order.
// Columns without a rule are carried through verbatim.
func (c *TableCleaner) Process(ctx context.Context, table *Table) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := table.Require(c.source, c.required...); err != nil {
		return nil, err
	}

	cleaned := table.Clone()
	for _, rule := range c.rules {
		cleaned.Apply(rule.Column, rule.Normalize)
	}
	return cleaned, nil
}

// Cleaner runs the record cleaning pipeline over both input tables
type Cleaner struct {
	logger     *slog.Logger
	recorder   Recorder
	reader     *TableReader
	writer     *TableWriter
	attendance Processor
	master     Processor
	tracer     trace.Tracer
}

// NewCleaner creates a cleaning pipeline. A nil recorder discards measurements.
func NewCleaner(logger *slog.Logger, recorder Recorder) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Cleaner{
		logger:     logger,
		recorder:   recorder,
		reader:     NewTableReader(logger),
		writer:     NewTableWriter(logger),
		attendance: NewAttendanceCleaner(),
		master:     NewMasterCleaner(),
		tracer:     otel.Tracer(tracerName),
	}
}

// Clean normalizes copies of both tables. The inputs are not modified.
func (c *Cleaner) Clean(ctx context.Context, attendance, master *Table) (CleanResult, error) {
	ctx, span := c.tracer.Start(ctx, "dataprocessing.Clean")
	defer span.End()
	start := time.Now()

	cleanedAttendance, err := c.attendance.Process(ctx, attendance)
	if err != nil {
		return CleanResult{}, spanError(span, err)
	}
	cleanedMaster, err := c.master.Process(ctx, master)
	if err != nil {
		return CleanResult{}, spanError(span, err)
	}

	result := CleanResult{
		Attendance:        cleanedAttendance,
		Master:            cleanedMaster,
		AttendanceMissing: cleanedAttendance.MissingCounts(),
		MasterMissing:     cleanedMaster.MissingCounts(),
	}

	c.recorder.RecordsCleaned(ctx, SourceAttendance, cleanedAttendance.Len())
	c.recorder.RecordsCleaned(ctx, SourceMaster, cleanedMaster.Len())
	c.recordMissing(ctx, SourceAttendance, result.AttendanceMissing)
	c.recordMissing(ctx, SourceMaster, result.MasterMissing)
	c.recorder.StageDuration(ctx, "clean", time.Since(start))

	span.SetAttributes(
		attribute.Int("attendance.rows", cleanedAttendance.Len()),
		attribute.Int("master.rows", cleanedMaster.Len()),
	)
	c.logger.InfoContext(ctx, "Tables cleaned",
		slog.Int("attendance_rows", cleanedAttendance.Len()),
		slog.Int("master_rows", cleanedMaster.Len()),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// CleanAndSave reads both raw inputs, cleans them and replaces both outputs.
// Each output keeps the format implied by its file extension.
func (c *Cleaner) CleanAndSave(ctx context.Context, paths CleanPaths) (CleanResult, error) {
	ctx, span := c.tracer.Start(ctx, "dataprocessing.CleanAndSave")
	defer span.End()
	start := time.Now()

	attendance, err := c.reader.ReadFile(ctx, paths.AttendanceIn)
	if err != nil {
		return CleanResult{}, spanError(span, err)
	}
	master, err := c.reader.ReadFile(ctx, paths.MasterIn)
	if err != nil {
		return CleanResult{}, spanError(span, err)
	}

	result, err := c.Clean(ctx, attendance, master)
	if err != nil {
		return CleanResult{}, spanError(span, err)
	}

	if err := c.writer.WriteFile(ctx, paths.AttendanceOut, result.Attendance); err != nil {
		return CleanResult{}, spanError(span, err)
	}
	if err := c.writer.WriteFile(ctx, paths.MasterOut, result.Master); err != nil {
		return CleanResult{}, spanError(span, err)
	}

	c.recorder.StageDuration(ctx, "clean_and_save", time.Since(start))
	c.logger.InfoContext(ctx, "Cleaned data saved",
		slog.String("attendance", paths.AttendanceOut),
		slog.String("master", paths.MasterOut))
	return result, nil
}

func (c *Cleaner) recordMissing(ctx context.Context, table string, counts map[string]int) {
	columns := make([]string, 0, len(counts))
	for column := range counts {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		if counts[column] == 0 {
			continue
		}
		c.recorder.CellsMissing(ctx, table, column, counts[column])
		c.logger.DebugContext(ctx, "Missing cells after cleaning",
			slog.String("table", table),
			slog.String("column", column),
			slog.Int("count", counts[column]))
	}
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
