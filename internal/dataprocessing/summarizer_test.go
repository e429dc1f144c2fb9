package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "attendcli/internal/errors"
	"attendcli/internal/shared/testutil"
	"attendcli/pkg/contracts/domain"
)

func TestSummarizer_ComputeMetrics(t *testing.T) {
	result, _ := cleanFixture(t)

	metrics, err := NewSummarizer(nil).ComputeMetrics(context.Background(), result.Attendance, result.Master)
	require.NoError(t, err)
	require.Len(t, metrics, 4)

	ids := make([]string, len(metrics))
	for i, m := range metrics {
		ids[i] = m.EmployeeID
		assert.Equal(t, m.TotalDays, m.PresentDays+m.WFHDays+m.LeaveDays+m.AbsentDays, m.EmployeeID)
	}
	assert.Equal(t, []string{"E001", "E002", "E003", "E999"}, ids)

	assert.Equal(t, domain.EmployeeMetrics{
		EmployeeID:        "E001",
		Name:              domain.NewValue("Asha Rao"),
		Department:        domain.NewValue("HR"),
		Designation:       domain.NewValue("Manager"),
		Location:          domain.NewValue("Bengaluru"),
		Status:            domain.NewValue("Active"),
		TotalDays:         3,
		PresentDays:       1,
		WFHDays:           1,
		LeaveDays:         1,
		PresentPercentage: 66.67,
		LeavePercentage:   33.33,
	}, metrics[0])

	e003 := metrics[2]
	assert.Equal(t, 2, e003.TotalDays)
	assert.Equal(t, 50.0, e003.PresentPercentage)
	assert.Equal(t, 50.0, e003.AbsentPercentage)
	assert.False(t, e003.Location.Valid)

	unmatched := metrics[3]
	assert.Equal(t, "E999", unmatched.EmployeeID)
	assert.False(t, unmatched.Name.Valid)
	assert.False(t, unmatched.Department.Valid)
	assert.Equal(t, 1, unmatched.TotalDays)
	assert.Equal(t, 100.0, unmatched.PresentPercentage)
}

func TestSummarizer_SchemaError(t *testing.T) {
	_, err := NewSummarizer(nil).ComputeMetrics(context.Background(),
		NewTable(domain.ColEmployeeID), NewTable(domain.MasterColumns...))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestMetricsFromRecords(t *testing.T) {
	rec := func(id, status string) domain.AttendanceRecord {
		r := domain.AttendanceRecord{EmployeeID: id}
		if status != "" {
			r.Status = domain.NewValue(status)
		}
		return r
	}

	records := []domain.AttendanceRecord{
		rec("E10", "Present"),
		rec("E2", "Holiday"),
		rec("E2", ""),
		rec("", "Present"),
		rec("E1", "Absent"),
		rec("E1", "Absent"),
		rec("E1", "Wfh"),
	}
	employees := []domain.EmployeeMasterRecord{
		{EmployeeID: "E1", Name: domain.NewValue("First")},
		{EmployeeID: "E1", Name: domain.NewValue("Duplicate")},
	}

	metrics, stats := MetricsFromRecords(records, employees)

	require.Len(t, metrics, 3)
	assert.Equal(t, "E1", metrics[0].EmployeeID)
	assert.Equal(t, "E2", metrics[1].EmployeeID)
	assert.Equal(t, "E10", metrics[2].EmployeeID)

	assert.Equal(t, domain.NewValue("First"), metrics[0].Name)
	assert.Equal(t, 3, metrics[0].TotalDays)
	assert.Equal(t, 33.33, metrics[0].PresentPercentage)
	assert.Equal(t, 66.67, metrics[0].AbsentPercentage)

	// Only unrecognized statuses: listed once with guarded zero percentages
	assert.Equal(t, 0, metrics[1].TotalDays)
	assert.Equal(t, 0.0, metrics[1].PresentPercentage)
	assert.Equal(t, 0.0, metrics[1].LeavePercentage)
	assert.Equal(t, 0.0, metrics[1].AbsentPercentage)

	assert.Equal(t, 1, stats.MissingID)
	assert.Equal(t, 2, stats.Uncounted)
	assert.Equal(t, []string{"E1"}, stats.DuplicateMaster)
}

func TestRollupsSkipEmployeesWithoutCountedDays(t *testing.T) {
	records := []domain.AttendanceRecord{
		{EmployeeID: "E1", Status: domain.NewValue(domain.StatusPresent)},
		{EmployeeID: "E1", Status: domain.NewValue(domain.StatusPresent)},
		{EmployeeID: "E2"},
	}
	employees := []domain.EmployeeMasterRecord{
		{EmployeeID: "E1", Department: domain.NewValue("IT")},
		{EmployeeID: "E2", Department: domain.NewValue("IT")},
	}

	metrics, _ := MetricsFromRecords(records, employees)
	require.Len(t, metrics, 2)
	require.Equal(t, 0, metrics[1].TotalDays)

	overall := Overall(metrics)
	assert.Equal(t, 2, overall.Employees)
	assert.Equal(t, 100.0, overall.MeanPresentPercentage)
	assert.Equal(t, 0.0, overall.MeanAbsentPercentage)

	assert.Equal(t, []DepartmentStat{
		{Department: "IT", Employees: 1, MeanPresentPercentage: 100},
	}, DepartmentRollup(metrics))

	bottom := BottomN(metrics, 1, 0)
	require.Len(t, bottom, 1)
	assert.Equal(t, "E1", bottom[0].EmployeeID)
	assert.Len(t, TopN(metrics, 5, 0), 1)

	assert.Equal(t, 2, ComputeInsights(metrics, 20).NoLeave)
	assert.Equal(t, OverallStats{Employees: 1}, Overall(metrics[1:]))
}

func TestSummarizer_LogsSkippedRows(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)

	attendance := NewTable(domain.AttendanceColumns...)
	attendance.AppendRow(domain.Null, domain.NewValue("2024-07-01"), domain.NewValue("Present"))
	attendance.AppendRow(domain.NewValue("E1"), domain.NewValue("2024-07-01"), domain.NewValue("Holiday"))

	metrics, err := NewSummarizer(logger).ComputeMetrics(context.Background(), attendance, NewTable(domain.MasterColumns...))
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.True(t, logs.ContainsMessage("Attendance rows without EmployeeID skipped"))
	assert.True(t, logs.ContainsMessage("Attendance rows with unrecognized status not counted"))
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, total int
		want        float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 8, 12.5},
		{5, 5, 100},
		{0, 4, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.part, tt.total), "%d/%d", tt.part, tt.total)
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"E2", "E10", true},
		{"E10", "E2", false},
		{"E001", "E002", true},
		{"E01", "E001", true},
		{"A9", "B1", true},
		{"E1", "E1", false},
		{"E1", "E1a", true},
		{"100", "99", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NaturalLess(tt.a, tt.b), "%s < %s", tt.a, tt.b)
	}
}
