package domain

// Column names of the per-employee metrics table
const (
	ColTotalDays         = "Total_Days"
	ColPresentDays       = "Present_Days"
	ColWFHDays           = "WFH_Days"
	ColLeaveDays         = "Leave_Days"
	ColAbsentDays        = "Absent_Days"
	ColPresentPercentage = "Present_Percentage"
	ColLeavePercentage   = "Leave_Percentage"
	ColAbsentPercentage  = "Absent_Percentage"
)

// MetricsColumns is the column order of every metrics export
var MetricsColumns = []string{
	ColEmployeeID, ColName, ColDepartment, ColDesignation, ColLocation, ColStatus,
	ColTotalDays, ColPresentDays, ColWFHDays, ColLeaveDays, ColAbsentDays,
	ColPresentPercentage, ColLeavePercentage, ColAbsentPercentage,
}

// EmployeeMetrics holds one employee's attendance counts and percentages,
// joined with the master attributes. Attributes are null when the employee
// has no master record.
type EmployeeMetrics struct {
	EmployeeID  string `json:"EmployeeID"`
	Name        Value  `json:"Name"`
	Department  Value  `json:"Department"`
	Designation Value  `json:"Designation"`
	Location    Value  `json:"Location"`
	Status      Value  `json:"Status"`

	TotalDays   int `json:"Total_Days"`
	PresentDays int `json:"Present_Days"`
	WFHDays     int `json:"WFH_Days"`
	LeaveDays   int `json:"Leave_Days"`
	AbsentDays  int `json:"Absent_Days"`

	PresentPercentage float64 `json:"Present_Percentage"`
	LeavePercentage   float64 `json:"Leave_Percentage"`
	AbsentPercentage  float64 `json:"Absent_Percentage"`
}
