package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "attendcli/internal/errors"
	"attendcli/internal/exporter"
	"attendcli/internal/validation"
)

// DefaultSheet names the worksheet of written workbooks
const DefaultSheet = "Sheet1"

// TableWriter persists Tables as CSV or XLSX
type TableWriter struct {
	logger    *slog.Logger
	csv       *exporter.CSVWriter
	xlsx      *exporter.XLSXWriter
	validator *validation.FileValidator
}

// NewTableWriter creates a writer
func NewTableWriter(logger *slog.Logger) *TableWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableWriter{
		logger:    logger,
		csv:       exporter.NewCSVWriter(logger),
		xlsx:      exporter.NewXLSXWriter(logger, false),
		validator: validation.NewFileValidator(logger),
	}
}

// WriteFile replaces the file at path with the table, choosing the format from its extension
func (w *TableWriter) WriteFile(ctx context.Context, path string, table *Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var write func() error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case validation.ExtCSV:
		write = func() error {
			return w.csv.WriteCSV(path, exporter.WriteOptions{
				Headers: table.Columns,
				Records: table.StringRows(),
			})
		}
	case validation.ExtXLSX:
		write = func() error {
			return w.xlsx.WriteWorkbook(path, exporter.Sheet{
				Name:    DefaultSheet,
				Headers: table.Columns,
				Rows:    table.CellRows(),
			})
		}
	default:
		return apperrors.NewAppValidationError("unsupported output format " + ext).WithContext("file", path)
	}

	if err := w.validator.ValidateOutputDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	if err := write(); err != nil {
		return apperrors.NewStorageError("failed to write "+path, err).WithContext("file", path)
	}
	return nil
}
