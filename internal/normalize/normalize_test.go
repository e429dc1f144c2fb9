package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"attendcli/pkg/contracts/domain"
)

func v(s string) domain.Value { return domain.NewValue(s) }

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input domain.Value
		want  domain.Value
	}{
		{"day/month/short year", v("01/07/24"), v("2024-07-01")},
		{"day-month-year", v("02-07-2024"), v("2024-07-02")},
		{"year/month/day", v("2024/07/03"), v("2024-07-03")},
		{"day.month.year", v("04.07.2024"), v("2024-07-04")},
		{"unpadded day and month", v("5/7/24"), v("2024-07-05")},
		{"surrounding whitespace", v("  06-07-2024 "), v("2024-07-06")},
		{"ambiguous resolved day first", v("01/02/03"), v("2003-02-01")},
		{"iso passes through", v("2024-07-08"), v("2024-07-08")},
		{"iso datetime", v("2024-07-09 10:30:00"), v("2024-07-09")},
		{"month first with four digit year", v("07/13/2024"), v("2024-07-13")},
		{"day first with four digit year", v("15/01/2020"), v("2020-01-15")},
		{"textual month", v("Jul 10, 2024"), v("2024-07-10")},
		{"lower case textual month", v("11 jul 2024"), v("2024-07-11")},
		{"spreadsheet serial", v("45474"), v("2024-07-01")},
		{"year and month", v("2024-07"), v("2024-07-01")},
		{"month name and year", v("July 2024"), v("2024-07-01")},
		{"abbreviated month and year", v("jul 2024"), v("2024-07-01")},
		{"impossible day", v("31/02/24"), domain.Null},
		{"not a date", v("not a date"), domain.Null},
		{"four digit number is not a serial", v("2024"), domain.Null},
		{"empty", v(""), domain.Null},
		{"missing", domain.Null, domain.Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.input))
		})
	}
}

func TestDateFromTime(t *testing.T) {
	assert.Equal(t, v("2024-07-01"), DateFromTime(time.Date(2024, 7, 1, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, domain.Null, DateFromTime(time.Time{}))
}

func TestTime(t *testing.T) {
	tests := []struct {
		name  string
		input domain.Value
		want  domain.Value
	}{
		{"morning 12-hour", v("9.00 AM"), v("09:00")},
		{"evening 12-hour", v("6.00 PM"), v("18:00")},
		{"lower case meridiem", v("7.45 pm"), v("19:45")},
		{"midnight", v("12.15 AM"), v("00:15")},
		{"hyphen substitution", v("09-10"), v("09:10")},
		{"dot substitution", v("17.30"), v("17:30")},
		{"already canonical", v("10:05"), v("10:05")},
		{"unpadded hour", v("9:05"), v("09:05")},
		{"whitespace trimmed", v(" 08:15 "), v("08:15")},
		{"out of range substitution passes through", v("25-99"), v("25:99")},
		{"bad 12-hour", v("9:00 AM"), domain.Null},
		{"out of range strict", v("24:61"), domain.Null},
		{"garbage", v("noon"), domain.Null},
		{"empty", v(""), domain.Null},
		{"missing", domain.Null, domain.Null},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Time(tt.input))
		})
	}
}

func TestDepartment(t *testing.T) {
	tests := []struct {
		input domain.Value
		want  domain.Value
	}{
		{v(" Hr "), v("HR")},
		{v("h r"), v("HR")},
		{v("i.t"), v("IT")},
		{v("ops"), v("OPERATIONS")},
		{v("Operation"), v("OPERATIONS")},
		{v("Fin"), v("FINANCE")},
		{v("s a l e s"), v("SALES")},
		{v("Sale"), v("SALES")},
		{v(" legal "), v("LEGAL")},
		{domain.Null, domain.Null},
	}

	for _, tt := range tests {
		t.Run(tt.input.String, func(t *testing.T) {
			assert.Equal(t, tt.want, Department(tt.input))
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		input domain.Value
		want  domain.Value
	}{
		{v("blr"), v("Bengaluru")},
		{v("BANGALORE"), v("Bengaluru")},
		{v("Bom"), v("Mumbai")},
		{v("Hyderabaad"), v("Hyderabad")},
		{v(" hyd "), v("Hyderabad")},
		{v("pun"), v("Pune")},
		{v("ncr-delhi"), v("Delhi")},
		{v("new york"), v("New York")},
		{v("o'fallon"), v("O'Fallon")},
		{domain.Null, domain.Null},
	}

	for _, tt := range tests {
		t.Run(tt.input.String, func(t *testing.T) {
			assert.Equal(t, tt.want, Location(tt.input))
		})
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, v("Wfh"), Status(v("WFH")))
	assert.Equal(t, v("Present"), Status(v(" present ")))
	assert.Equal(t, v("Inactive"), Status(v("INACTIVE")))
	assert.Equal(t, domain.Null, Status(domain.Null))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "O'Brien", Title("o'brien"))
	assert.Equal(t, "Ncr-Delhi", Title("NCR-DELHI"))
	assert.Equal(t, "Work From Home", Title("work from home"))
	assert.Equal(t, "", Title(""))
}

func TestNormalizersAreIdempotent(t *testing.T) {
	cases := map[string]struct {
		fn     Func
		inputs []string
	}{
		"date":       {Date, []string{"01/07/24", "02-07-2024", "2024/07/03", "04.07.2024", "45474"}},
		"time":       {Time, []string{"9.00 AM", "6.00 PM", "09-10", "10:05", "17.30"}},
		"department": {Department, []string{" Hr ", "i.t", "ops", "Fin", "legal"}},
		"location":   {Location, []string{"blr", "Bom", "Hyderabaad", "ncr-delhi", "new york"}},
		"status":     {Status, []string{"WFH", "present", "LEAVE"}},
	}

	for name, tc := range cases {
		for _, in := range tc.inputs {
			once := tc.fn(v(in))
			assert.Equal(t, once, tc.fn(once), "%s(%q)", name, in)
		}
	}
}
