// Package normalize maps raw attendance and employee master cells to canonical values.
//
// Every normalizer is a pure Func from one cell to one cell. A cell that cannot be
// interpreted degrades to domain.Null; normalizers never return errors and never panic,
// so a single bad cell can not abort a cleaning run.
//
// Canonical forms:
//
//	Date        2006-01-02
//	Time        15:04 (24-hour)
//	Department  upper case, aliases folded (OPS -> OPERATIONS)
//	Location    title case, aliases folded (Blr -> Bengaluru)
//	Status      title case (WFH -> Wfh)
package normalize

import "attendcli/pkg/contracts/domain"

// Func normalizes a single cell
type Func func(domain.Value) domain.Value
