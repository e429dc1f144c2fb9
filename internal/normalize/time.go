package normalize

import (
	"strings"
	"time"

	"attendcli/pkg/contracts/domain"
)

const (
	twelveHourLayout = "3.04 PM"
	strictLayout     = "15:4"
	timeLayout       = "15:04"
)

// Time normalizes a raw time-of-day cell to 24-hour HH:MM.
//
// Rules, first match wins:
//   - AM/PM in any case: parsed as 12-hour time with a dot separator ("9.00 AM")
//   - contains "-": each hyphen becomes a colon ("09-10" -> "09:10")
//   - contains ".": each dot becomes a colon
//   - otherwise: parsed as strict 24-hour H:MM and reformatted
//
// The substitution rules are textual and do not range-check the result, so
// "25-99" becomes "25:99".
func Time(raw domain.Value) domain.Value {
	if !raw.Valid {
		return domain.Null
	}
	s := strings.TrimSpace(raw.String)
	upper := strings.ToUpper(s)

	switch {
	case strings.Contains(upper, "AM") || strings.Contains(upper, "PM"):
		t, err := time.Parse(twelveHourLayout, strings.Join(strings.Fields(upper), " "))
		if err != nil {
			return domain.Null
		}
		return domain.NewValue(t.Format(timeLayout))
	case strings.Contains(s, "-"):
		return domain.NewValue(strings.ReplaceAll(s, "-", ":"))
	case strings.Contains(s, "."):
		return domain.NewValue(strings.ReplaceAll(s, ".", ":"))
	}

	t, err := time.Parse(strictLayout, s)
	if err != nil {
		return domain.Null
	}
	return domain.NewValue(t.Format(timeLayout))
}
