package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

const (
	headerFill    = "#4472C4"
	maxColumnWide = 60.0
)

// Sheet is one worksheet of a workbook export
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// XLSXWriter provides spreadsheet export functionality
type XLSXWriter struct {
	logger *slog.Logger
	styled bool
}

// NewXLSXWriter creates a writer. Styled writers bold and fill the header row
// and size columns to their content.
func NewXLSXWriter(logger *slog.Logger, styled bool) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger, styled: styled}
}

// WriteWorkbook replaces the file at filePath with a workbook holding the given sheets
func (w *XLSXWriter) WriteWorkbook(filePath string, sheets ...Sheet) error {
	w.logger.Info("Writing XLSX file",
		slog.String("file_path", filePath),
		slog.Int("sheet_count", len(sheets)))

	return WriteFileAtomic(filePath, func(out io.Writer) error {
		return w.Write(out, sheets...)
	})
}

// Write encodes a workbook holding the given sheets to out
func (w *XLSXWriter) Write(out io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet.Name, err)
		}

		if err := w.fillSheet(f, sheet); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) fillSheet(f *excelize.File, sheet Sheet) error {
	sw, err := f.NewStreamWriter(sheet.Name)
	if err != nil {
		return fmt.Errorf("failed to open sheet %q: %w", sheet.Name, err)
	}

	var headerStyle int
	if w.styled {
		headerStyle, err = f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}

		for col, width := range columnWidths(sheet) {
			if err := sw.SetColWidth(col+1, col+1, width); err != nil {
				return fmt.Errorf("failed to size column %d: %w", col+1, err)
			}
		}
	}

	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		if w.styled {
			header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
		} else {
			header[i] = h
		}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet.Name, err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, sheet.Name, err)
		}
	}

	return sw.Flush()
}

// columnWidths sizes each column to its widest cell in display columns
func columnWidths(sheet Sheet) []float64 {
	widths := make([]float64, len(sheet.Headers))
	measure := func(col int, v interface{}) {
		if col >= len(widths) || v == nil {
			return
		}
		wide := float64(runewidth.StringWidth(fmt.Sprint(v))) + 2
		if wide > maxColumnWide {
			wide = maxColumnWide
		}
		if wide > widths[col] {
			widths[col] = wide
		}
	}

	for i, h := range sheet.Headers {
		measure(i, h)
	}
	for _, row := range sheet.Rows {
		for i, v := range row {
			measure(i, v)
		}
	}
	return widths
}
