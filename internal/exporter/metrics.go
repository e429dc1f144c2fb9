package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"attendcli/pkg/contracts/domain"
)

// MetricsSheet is the worksheet name of metrics workbooks
const MetricsSheet = "Employee_Metrics"

// MetricsRecords renders metrics as CSV records in domain.MetricsColumns order
func MetricsRecords(metrics []domain.EmployeeMetrics) [][]string {
	records := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		records = append(records, []string{
			m.EmployeeID,
			formatValue(m.Name),
			formatValue(m.Department),
			formatValue(m.Designation),
			formatValue(m.Location),
			formatValue(m.Status),
			formatInt(m.TotalDays),
			formatInt(m.PresentDays),
			formatInt(m.WFHDays),
			formatInt(m.LeaveDays),
			formatInt(m.AbsentDays),
			formatFloat(m.PresentPercentage),
			formatFloat(m.LeavePercentage),
			formatFloat(m.AbsentPercentage),
		})
	}
	return records
}

// MetricsCells renders metrics as typed spreadsheet rows in domain.MetricsColumns order
func MetricsCells(metrics []domain.EmployeeMetrics) [][]interface{} {
	rows := make([][]interface{}, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []interface{}{
			m.EmployeeID,
			cellValue(m.Name),
			cellValue(m.Department),
			cellValue(m.Designation),
			cellValue(m.Location),
			cellValue(m.Status),
			m.TotalDays,
			m.PresentDays,
			m.WFHDays,
			m.LeaveDays,
			m.AbsentDays,
			m.PresentPercentage,
			m.LeavePercentage,
			m.AbsentPercentage,
		})
	}
	return rows
}

// MetricsSheetOf wraps metrics as a workbook sheet
func MetricsSheetOf(name string, metrics []domain.EmployeeMetrics) Sheet {
	return Sheet{
		Name:    name,
		Headers: domain.MetricsColumns,
		Rows:    MetricsCells(metrics),
	}
}

// MetricsExporter writes the per-employee metrics table in any supported format
type MetricsExporter struct {
	logger *slog.Logger
	csv    *CSVWriter
	xlsx   *XLSXWriter
}

// NewMetricsExporter creates a metrics exporter
func NewMetricsExporter(logger *slog.Logger) *MetricsExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetricsExporter{
		logger: logger,
		csv:    NewCSVWriter(logger),
		xlsx:   NewXLSXWriter(logger, true),
	}
}

// Export replaces the file at path, choosing the format from its extension
func (e *MetricsExporter) Export(ctx context.Context, path string, metrics []domain.EmployeeMetrics) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.logger.InfoContext(ctx, "Exporting employee metrics",
		slog.String("file_path", path),
		slog.Int("employees", len(metrics)))

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return e.csv.WriteCSV(path, WriteOptions{
			Headers: domain.MetricsColumns,
			Records: MetricsRecords(metrics),
		})
	case ".xlsx":
		return e.xlsx.WriteWorkbook(path, MetricsSheetOf(MetricsSheet, metrics))
	case ".json":
		return WriteFileAtomic(path, func(w io.Writer) error {
			return WriteMetricsJSON(w, metrics)
		})
	default:
		return fmt.Errorf("unsupported metrics format %q", ext)
	}
}

// WriteCSV encodes metrics as CSV to w
func (e *MetricsExporter) WriteCSV(w io.Writer, metrics []domain.EmployeeMetrics, bom bool) error {
	return e.csv.Write(w, WriteOptions{
		Headers:   domain.MetricsColumns,
		Records:   MetricsRecords(metrics),
		BOMPrefix: bom,
	})
}

// WriteXLSX encodes metrics as a single sheet workbook to w
func (e *MetricsExporter) WriteXLSX(w io.Writer, metrics []domain.EmployeeMetrics) error {
	return e.xlsx.Write(w, MetricsSheetOf(MetricsSheet, metrics))
}

// WriteMetricsJSON encodes metrics as an indented JSON array to w
func WriteMetricsJSON(w io.Writer, metrics []domain.EmployeeMetrics) error {
	if metrics == nil {
		metrics = []domain.EmployeeMetrics{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(metrics)
}
