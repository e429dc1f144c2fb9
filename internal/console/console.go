// Package console renders plain text tables and section headings for the
// command line tools. Column widths use display width so names in wide
// scripts stay aligned.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MissingCell is printed for missing values
const MissingCell = "NaN"

// Table is a header plus rows of preformatted cells
type Table struct {
	Header []string
	Rows   [][]string
	// RightAlign marks numeric columns
	RightAlign map[int]bool
}

// NewTable creates a table with the given header
func NewTable(header ...string) *Table {
	return &Table{Header: header, RightAlign: make(map[int]bool)}
}

// Append adds a row
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// AlignRight marks columns as right aligned
func (t *Table) AlignRight(columns ...int) *Table {
	for _, c := range columns {
		t.RightAlign[c] = true
	}
	return t
}

// Render writes the table with a dashed rule under the header
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.Header))
	measure := func(row []string) {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if n := runewidth.StringWidth(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	var sb strings.Builder
	t.writeRow(&sb, t.Header, widths)
	for i, width := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", width))
	}
	sb.WriteString("\n")
	for _, row := range t.Rows {
		t.writeRow(&sb, row, widths)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Table) writeRow(sb *strings.Builder, row []string, widths []int) {
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			sb.WriteString("  ")
		}
		pad := strings.Repeat(" ", width-runewidth.StringWidth(cell))
		if t.RightAlign[i] {
			sb.WriteString(pad + cell)
		} else if i == len(widths)-1 {
			sb.WriteString(cell)
		} else {
			sb.WriteString(cell + pad)
		}
	}
	sb.WriteString("\n")
}

// Section writes a blank line, the title and a dashed underline of the same width
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", runewidth.StringWidth(title)))
}

// Cell renders a possibly missing value
func Cell(s string, valid bool) string {
	if !valid {
		return MissingCell
	}
	return s
}

// Percent formats a percentage with two decimals
func Percent(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
