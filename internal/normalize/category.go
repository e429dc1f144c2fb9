package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"attendcli/pkg/contracts/domain"
)

// Canonical departments
const (
	DeptHR         = "HR"
	DeptIT         = "IT"
	DeptOperations = "OPERATIONS"
	DeptFinance    = "FINANCE"
	DeptSales      = "SALES"
)

// Canonical locations
const (
	LocPune      = "Pune"
	LocMumbai    = "Mumbai"
	LocBengaluru = "Bengaluru"
	LocHyderabad = "Hyderabad"
	LocDelhi     = "Delhi"
)

// departmentAliases is keyed by the trimmed, upper-cased spelling
var departmentAliases = map[string]string{
	"HR":        DeptHR,
	"H R":       DeptHR,
	"IT":        DeptIT,
	"I.T":       DeptIT,
	"OPS":       DeptOperations,
	"OPERATION": DeptOperations,
	"FIN":       DeptFinance,
	"SALES":     DeptSales,
	"SALE":      DeptSales,
	"S A L E S": DeptSales,
}

// locationAliases is keyed by the trimmed, title-cased spelling
var locationAliases = map[string]string{
	"Pune":       LocPune,
	"Pun":        LocPune,
	"Mumbai":     LocMumbai,
	"Bom":        LocMumbai,
	"Bengaluru":  LocBengaluru,
	"Bangalore":  LocBengaluru,
	"Blr":        LocBengaluru,
	"Hyderabad":  LocHyderabad,
	"Hyderabaad": LocHyderabad,
	"Hyd":        LocHyderabad,
	"Delhi":      LocDelhi,
	"Ncr-Delhi":  LocDelhi,
}

// Department maps a raw department to its canonical code.
// Unknown departments pass through trimmed and upper-cased.
func Department(raw domain.Value) domain.Value {
	if !raw.Valid {
		return domain.Null
	}
	dept := strings.ToUpper(strings.TrimSpace(raw.String))
	if canonical, ok := departmentAliases[dept]; ok {
		return domain.NewValue(canonical)
	}
	return domain.NewValue(dept)
}

// Location maps a raw location to its canonical city.
// Unknown locations pass through trimmed and title-cased.
func Location(raw domain.Value) domain.Value {
	if !raw.Valid {
		return domain.Null
	}
	loc := Title(strings.TrimSpace(raw.String))
	if canonical, ok := locationAliases[loc]; ok {
		return domain.NewValue(canonical)
	}
	return domain.NewValue(loc)
}

// Status title-cases an attendance or employment status ("WFH" -> "Wfh").
func Status(raw domain.Value) domain.Value {
	if !raw.Valid {
		return domain.Null
	}
	return domain.NewValue(Title(strings.TrimSpace(raw.String)))
}

// Title upper-cases the first letter of every word and lower-cases the rest.
// Words are split on Unicode word boundaries and on apostrophes, so "ncr-delhi"
// becomes "Ncr-Delhi" and "o'brien" becomes "O'Brien".
func Title(s string) string {
	// A Caser keeps state and is not safe for concurrent use
	caser := cases.Title(language.Und)
	parts := strings.Split(s, "'")
	for i, part := range parts {
		parts[i] = caser.String(part)
	}
	return strings.Join(parts, "'")
}
