package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"attendcli/pkg/contracts/domain"
)

// dateLayouts are tried in order and the first successful parse wins, which is
// how ambiguous inputs such as 01/02/03 are resolved (day/month/year here).
// Day and month accept one or two digits.
var dateLayouts = []string{
	"2/1/06",   // day/month/2-digit year
	"2-1-2006", // day-month-year
	"2006/1/2", // year/month/day
	"2.1.2006", // day.month.year
}

// fallbackLayouts cover the permissive second pass. Month-first layouts only
// appear here, after every day-first explicit layout had its chance.
var fallbackLayouts = []string{
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"20060102",
	"1/2/2006",
	"2/1/2006", // day first once month first is out of range
	"1-2-06",
	"2006.1.2",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-Jan-06",
	"Mon, 2 Jan 2006",
	"2006-1", // month only, first of the month
	"January 2006",
	"Jan 2006",
}

// Spreadsheet serial numbers outside this window are not treated as dates.
// The lower bound keeps four digit years such as "2024" from being read as serials.
const (
	minSerialDate = 10000
	maxSerialDate = 2958465
)

// Date normalizes a raw date cell to YYYY-MM-DD, or Null if no layout matches.
func Date(raw domain.Value) domain.Value {
	if !raw.Valid {
		return domain.Null
	}
	s := strings.TrimSpace(raw.String)
	if s == "" {
		return domain.Null
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateFromTime(t)
		}
	}

	if t, ok := parsePermissive(s); ok {
		return DateFromTime(t)
	}
	return domain.Null
}

// DateFromTime formats a value that is already a date
func DateFromTime(t time.Time) domain.Value {
	if t.IsZero() {
		return domain.Null
	}
	return domain.NewValue(t.Format(domain.DateLayout))
}

// parsePermissive is the generic second pass: common ISO, textual and
// month-first forms, then spreadsheet serial dates.
func parsePermissive(s string) (time.Time, bool) {
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// Textual months are matched case-insensitively
	if titled := Title(s); titled != s {
		for _, layout := range fallbackLayouts {
			if t, err := time.Parse(layout, titled); err == nil {
				return t, true
			}
		}
	}

	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial < minSerialDate || serial > maxSerialDate {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
