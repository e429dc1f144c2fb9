package domain

import "time"

// Attendance status values after title-casing
const (
	StatusPresent = "Present"
	StatusWFH     = "Wfh"
	StatusLeave   = "Leave"
	StatusAbsent  = "Absent"
)

// AttendanceStatuses lists the statuses that partition an employee's days, in report order
var AttendanceStatuses = []string{StatusPresent, StatusWFH, StatusLeave, StatusAbsent}

// DateLayout is the canonical calendar date layout
const DateLayout = "2006-01-02"

// Column names of the attendance table
const (
	ColEmployeeID = "EmployeeID"
	ColDate       = "Date"
	ColStatus     = "Status"
	ColInTime     = "InTime"
	ColOutTime    = "OutTime"
)

// Column names of the employee master table
const (
	ColName          = "Name"
	ColDepartment    = "Department"
	ColDesignation   = "Designation"
	ColLocation      = "Location"
	ColDateOfJoining = "DateOfJoining"
)

// AttendanceColumns are the required columns of the attendance table
var AttendanceColumns = []string{ColEmployeeID, ColDate, ColStatus, ColInTime, ColOutTime}

// MasterColumns are the required columns of the employee master table
var MasterColumns = []string{ColEmployeeID, ColName, ColDepartment, ColDesignation, ColLocation, ColDateOfJoining, ColStatus}

// AttendanceRecord is one employee's attendance for one day.
type AttendanceRecord struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       Value  `json:"date"`
	Status     Value  `json:"status"`
	InTime     Value  `json:"in_time"`
	OutTime    Value  `json:"out_time"`
}

// Day returns the record date, and false when the date is missing or not canonical
func (r AttendanceRecord) Day() (time.Time, bool) {
	if !r.Date.Valid {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, r.Date.String)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsPresent reports whether the day counts as attended (in office or from home)
func (r AttendanceRecord) IsPresent() bool {
	return r.Status.Valid && (r.Status.String == StatusPresent || r.Status.String == StatusWFH)
}

// EmployeeMasterRecord is one row of the employee master table, keyed by EmployeeID.
type EmployeeMasterRecord struct {
	EmployeeID    string `json:"employee_id" validate:"required"`
	Name          Value  `json:"name"`
	Department    Value  `json:"department"`
	Designation   Value  `json:"designation"`
	Location      Value  `json:"location"`
	DateOfJoining Value  `json:"date_of_joining"`
	Status        Value  `json:"status"`
}
