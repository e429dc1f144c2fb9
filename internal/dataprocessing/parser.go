package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	apperrors "attendcli/internal/errors"
	"attendcli/internal/validation"
	"attendcli/pkg/contracts/domain"
)

// missingMarkers are cell spellings read as a missing value
var missingMarkers = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"#N/A": {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
	"None": {},
	"<NA>": {},
	"NaT":  {},
}

// ParseCell converts raw cell text to a Value, mapping missing markers to Null
func ParseCell(s string) domain.Value {
	if _, ok := missingMarkers[strings.TrimSpace(s)]; ok {
		return domain.Null
	}
	return domain.NewValue(s)
}

// TableReader loads CSV and XLSX files into Tables
type TableReader struct {
	logger    *slog.Logger
	validator *validation.FileValidator
}

// NewTableReader creates a reader
func NewTableReader(logger *slog.Logger) *TableReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableReader{
		logger:    logger,
		validator: validation.NewFileValidator(logger),
	}
}

// ReadFile reads the table at path, choosing the format from its extension.
// Workbooks are read from their first sheet.
func (r *TableReader) ReadFile(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.validator.ValidateTableFile(path); err != nil {
		return nil, err
	}

	var (
		table *Table
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case validation.ExtXLSX:
		table, err = r.readXLSXFile(path, "")
	default:
		table, err = r.readCSVFile(path)
	}
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Table loaded",
		slog.String("file", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))
	return table, nil
}

func (r *TableReader) readCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open CSV", errors.Wrapf(err, "opening %s", path))
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse CSV %s", path), err).
			WithContext("file", path)
	}
	return table, nil
}

// ReadCSV parses a CSV stream whose first record is the header.
// A UTF-8 byte order mark is dropped, short records are padded with missing
// cells and records longer than the header are rejected.
func ReadCSV(in io.Reader) (*Table, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("csv has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading csv header")
	}

	table := NewTable(header...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv record")
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, errors.Errorf("line %d has %d fields, header has %d", line, len(record), len(header))
		}
		table.AppendRow(parseCells(record)...)
	}
	return table, nil
}

func (r *TableReader) readXLSXFile(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", path),
			errors.Wrap(err, "opening workbook")).WithContext("file", path)
	}
	defer f.Close()

	table, err := ReadSheet(f, sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read workbook %s", path), err).
			WithContext("file", path)
	}
	return table, nil
}

// ReadSheet reads a worksheet whose first row is the header. An empty sheet
// name selects the first sheet. Entirely blank rows are skipped.
func ReadSheet(f *excelize.File, sheet string) (*Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("sheet %q has no header row", sheet)
	}

	table := NewTable(rows[0]...)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if len(row) > len(table.Columns) && !isBlank(row[len(table.Columns):]) {
			return nil, errors.Errorf("row %d of sheet %q has cells beyond the header", i+2, sheet)
		}
		table.AppendRow(parseCells(row)...)
	}
	return table, nil
}

func parseCells(record []string) []domain.Value {
	cells := make([]domain.Value, len(record))
	for i, s := range record {
		cells[i] = ParseCell(s)
	}
	return cells
}

func isBlank(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
