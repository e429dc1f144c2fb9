package exporter

import (
	"fmt"

	"attendcli/pkg/contracts/domain"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatValue renders a missing cell as an empty field
func formatValue(v domain.Value) string {
	return v.OrEmpty()
}

// cellValue renders a missing cell as an empty spreadsheet cell
func cellValue(v domain.Value) interface{} {
	if !v.Valid {
		return nil
	}
	return v.String
}
