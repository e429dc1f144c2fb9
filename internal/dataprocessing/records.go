package dataprocessing

import (
	"strings"

	"attendcli/pkg/contracts/domain"
)

// Source names used in schema errors
const (
	SourceAttendance = "attendance"
	SourceMaster     = "employee master"
)

// AttendanceRecords converts an attendance table to typed records.
// EmployeeID is trimmed, a missing ID becomes the empty string.
func AttendanceRecords(t *Table) ([]domain.AttendanceRecord, error) {
	if err := t.Require(SourceAttendance, domain.AttendanceColumns...); err != nil {
		return nil, err
	}

	id := t.ColumnIndex(domain.ColEmployeeID)
	date := t.ColumnIndex(domain.ColDate)
	status := t.ColumnIndex(domain.ColStatus)
	in := t.ColumnIndex(domain.ColInTime)
	out := t.ColumnIndex(domain.ColOutTime)

	records := make([]domain.AttendanceRecord, len(t.Rows))
	for i, row := range t.Rows {
		records[i] = domain.AttendanceRecord{
			EmployeeID: strings.TrimSpace(row[id].OrEmpty()),
			Date:       row[date],
			Status:     row[status],
			InTime:     row[in],
			OutTime:    row[out],
		}
	}
	return records, nil
}

// MasterRecords converts an employee master table to typed records
func MasterRecords(t *Table) ([]domain.EmployeeMasterRecord, error) {
	if err := t.Require(SourceMaster, domain.MasterColumns...); err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(domain.MasterColumns))
	for _, c := range domain.MasterColumns {
		idx[c] = t.ColumnIndex(c)
	}

	records := make([]domain.EmployeeMasterRecord, len(t.Rows))
	for i, row := range t.Rows {
		records[i] = domain.EmployeeMasterRecord{
			EmployeeID:    strings.TrimSpace(row[idx[domain.ColEmployeeID]].OrEmpty()),
			Name:          row[idx[domain.ColName]],
			Department:    row[idx[domain.ColDepartment]],
			Designation:   row[idx[domain.ColDesignation]],
			Location:      row[idx[domain.ColLocation]],
			DateOfJoining: row[idx[domain.ColDateOfJoining]],
			Status:        row[idx[domain.ColStatus]],
		}
	}
	return records, nil
}
