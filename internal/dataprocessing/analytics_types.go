package dataprocessing

import (
	"time"

	"attendcli/pkg/contracts/domain"
)

// UnknownLocation labels employees whose master record has no location
const UnknownLocation = "Unknown"

// JoinedRecord is an attendance record with the master attributes of its employee
type JoinedRecord struct {
	domain.AttendanceRecord
	Name       domain.Value `json:"name"`
	Department domain.Value `json:"department"`
	Location   domain.Value `json:"location"`

	day    time.Time
	hasDay bool
}

// Day returns the parsed record date
func (r JoinedRecord) Day() (time.Time, bool) {
	return r.day, r.hasDay
}

// LocationLabel returns the location, or UnknownLocation when missing
func (r JoinedRecord) LocationLabel() string {
	return r.Location.Or(UnknownLocation)
}

// DepartmentStat is the mean present percentage of one department
type DepartmentStat struct {
	Department            string  `json:"department"`
	Employees             int     `json:"employees"`
	MeanPresentPercentage float64 `json:"mean_present_percentage"`
}

// OverallStats summarizes the metrics table
type OverallStats struct {
	Employees             int     `json:"employees"`
	MeanPresentPercentage float64 `json:"mean_present_percentage"`
	MeanLeavePercentage   float64 `json:"mean_leave_percentage"`
	MeanAbsentPercentage  float64 `json:"mean_absent_percentage"`
}

// Insights counts employees at notable attendance extremes
type Insights struct {
	PerfectAttendance int     `json:"perfect_attendance"`
	HighAbsence       int     `json:"high_absence"`
	AbsenceThreshold  float64 `json:"absence_threshold"`
	NoLeave           int     `json:"no_leave"`
}

// StatusBreakdown holds status counts and percentage shares for one group
type StatusBreakdown struct {
	Key    string             `json:"key"`
	Total  int                `json:"total"`
	Counts map[string]int     `json:"counts"`
	Shares map[string]float64 `json:"shares"`
}

// AnalysisOptions are the caller supplied ranking and insight parameters
type AnalysisOptions struct {
	MinDays          int
	TopN             int
	AbsenceThreshold float64
}

// DefaultAnalysisOptions returns the parameters used by the reports
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		MinDays:          5,
		TopN:             5,
		AbsenceThreshold: 20,
	}
}

// Analysis bundles every rollup of one metrics table
type Analysis struct {
	Options     AnalysisOptions          `json:"-"`
	Overall     OverallStats             `json:"overall"`
	Departments []DepartmentStat         `json:"departments"`
	Top         []domain.EmployeeMetrics `json:"top"`
	Bottom      []domain.EmployeeMetrics `json:"bottom"`
	Insights    Insights                 `json:"insights"`
	Metrics     []domain.EmployeeMetrics `json:"metrics"`
}
