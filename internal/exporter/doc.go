// Package exporter writes tables and attendance metrics to CSV, XLSX and JSON.
//
// CSVWriter and XLSXWriter are format writers over plain header and row slices.
// Every file write is a full replace: output is staged in a temporary file in the
// target directory and renamed over the destination, so an interrupted run never
// leaves a half-written table behind a previous good one.
//
// MetricsExporter renders the per-employee metrics table in the fixed column order
// of domain.MetricsColumns.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	err := writer.WriteCSV("Employee_Attendance_Clean.csv", exporter.WriteOptions{
//	    Headers: table.Columns,
//	    Records: table.StringRows(),
//	})
//
//	metrics := exporter.NewMetricsExporter(logger)
//	err = metrics.Export(ctx, "employee_metrics.xlsx", rows)
package exporter
