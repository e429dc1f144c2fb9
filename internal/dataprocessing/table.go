package dataprocessing

import (
	"sort"

	apperrors "attendcli/internal/errors"
	"attendcli/internal/normalize"
	"attendcli/pkg/contracts/domain"
)

// Table is an in-memory tabular dataset. Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]domain.Value
}

// NewTable creates an empty table with the given columns
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the first column with the given name, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Require fails with a schema error naming every absent column
func (t *Table) Require(source string, columns ...string) error {
	var missing []string
	for _, c := range columns {
		if t.ColumnIndex(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError(source, missing)
	}
	return nil
}

// AppendRow adds a row, padding or truncating it to the column count
func (t *Table) AppendRow(cells ...domain.Value) {
	row := make([]domain.Value, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]domain.Value, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]domain.Value(nil), row...)
	}
	return out
}

// Cell returns the value at row i of the named column, Null if the column is absent
func (t *Table) Cell(i int, column string) domain.Value {
	idx := t.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return domain.Null
	}
	return t.Rows[i][idx]
}

// Column returns a copy of every value in the named column
func (t *Table) Column(name string) []domain.Value {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]domain.Value, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// Apply replaces every cell of the named column with fn(cell).
// It reports false when the column does not exist.
func (t *Table) Apply(column string, fn normalize.Func) bool {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return false
	}
	for _, row := range t.Rows {
		row[idx] = fn(row[idx])
	}
	return true
}

// MissingCounts counts missing cells per column
func (t *Table) MissingCounts() map[string]int {
	counts := make(map[string]int, len(t.Columns))
	for _, c := range t.Columns {
		counts[c] = 0
	}
	for _, row := range t.Rows {
		for i, v := range row {
			if !v.Valid {
				counts[t.Columns[i]]++
			}
		}
	}
	return counts
}

// Unique returns the sorted distinct non-missing values of the named column
func (t *Table) Unique(column string) []string {
	seen := make(map[string]struct{})
	for _, v := range t.Column(column) {
		if v.Valid {
			seen[v.String] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for s := range seen {
		values = append(values, s)
	}
	sort.Strings(values)
	return values
}

// Head returns a table holding at most the first n rows
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

// StringRows renders every row with missing cells as empty strings
func (t *Table) StringRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = v.OrEmpty()
		}
		out[i] = rec
	}
	return out
}

// CellRows renders every row with missing cells as nil, for spreadsheet output
func (t *Table) CellRows() [][]interface{} {
	out := make([][]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]interface{}, len(row))
		for j, v := range row {
			if v.Valid {
				rec[j] = v.String
			}
		}
		out[i] = rec
	}
	return out
}
