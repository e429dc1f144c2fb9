package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "attendcli/internal/errors"
	"attendcli/pkg/contracts/domain"
)

func fixtureDataset(t *testing.T) *Dataset {
	t.Helper()
	result, _ := cleanFixture(t)
	ds, err := NewDataset(result.Attendance, result.Master)
	require.NoError(t, err)
	return ds
}

func day(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDataset_Join(t *testing.T) {
	ds := fixtureDataset(t)

	assert.Len(t, ds.Records, 8)
	assert.Len(t, ds.Employees, 4)
	assert.Len(t, ds.Metrics, 4)
	// E999 has no master record
	assert.Len(t, ds.Joined, 7)
	for _, r := range ds.Joined {
		assert.NotEqual(t, "E999", r.EmployeeID)
	}
}

func TestDataset_KPIs(t *testing.T) {
	ds := fixtureDataset(t)

	assert.Equal(t, KPIs{
		TotalEmployees: 4,
		Records:        7,
		PresentRate:    57.14,
		LeaveRate:      14.29,
		AbsentRate:     28.57,
	}, ds.KPIs())

	assert.Equal(t, KPIs{}, (&Dataset{}).KPIs())
}

func TestDataset_Options(t *testing.T) {
	ds := fixtureDataset(t)

	assert.Equal(t, FilterOptions{
		MinDate:     "2024-07-01",
		MaxDate:     "2024-07-03",
		Departments: []string{"HR", "IT", "OPERATIONS"},
		Locations:   []string{"Bengaluru", "Mumbai", UnknownLocation},
	}, ds.Options())
}

func TestFilter_Apply(t *testing.T) {
	ds := fixtureDataset(t)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no criteria drops undated", Filter{}, 6},
		{"from", Filter{From: day("2024-07-02")}, 4},
		{"to", Filter{To: day("2024-07-01")}, 2},
		{"single day", Filter{From: day("2024-07-02"), To: day("2024-07-02")}, 2},
		{"department", Filter{Departments: []string{"HR"}}, 3},
		{"departments", Filter{Departments: []string{"HR", "OPERATIONS"}}, 5},
		{"unknown location", Filter{Locations: []string{UnknownLocation}}, 1},
		{"location and department", Filter{Departments: []string{"HR"}, Locations: []string{"Mumbai"}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.filter.Apply(ds.Joined), tt.want)
		})
	}
}

func TestStatusRollups(t *testing.T) {
	ds := fixtureDataset(t)
	records := Filter{}.Apply(ds.Joined)

	t.Run("department", func(t *testing.T) {
		got := DepartmentBreakdown(records)
		require.Len(t, got, 3)
		assert.Equal(t, StatusBreakdown{
			Key:    "HR",
			Total:  3,
			Counts: map[string]int{"Present": 1, "Wfh": 1, "Leave": 1},
			Shares: map[string]float64{"Present": 33.33, "Wfh": 33.33, "Leave": 33.33},
		}, got[0])
		assert.Equal(t, "IT", got[1].Key)
		assert.Equal(t, 100.0, got[1].Shares["Present"])
		assert.Equal(t, "OPERATIONS", got[2].Key)
		assert.Equal(t, 50.0, got[2].Shares["Absent"])
	})

	t.Run("location", func(t *testing.T) {
		got := LocationRollup(records)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Bengaluru", "Mumbai", UnknownLocation}, []string{got[0].Key, got[1].Key, got[2].Key})
		assert.Equal(t, 1, got[2].Total)
	})

	t.Run("weekday", func(t *testing.T) {
		got := WeekdayRollup(records)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday"}, []string{got[0].Key, got[1].Key, got[2].Key})
		assert.Equal(t, map[string]int{"Present": 1, "Absent": 1}, got[0].Counts)
	})

	t.Run("weekend after weekdays", func(t *testing.T) {
		weekend := []JoinedRecord{
			joined("E1", "2024-07-06", "Present"), // Saturday
			joined("E1", "2024-07-05", "Present"), // Friday
		}
		got := WeekdayRollup(weekend)
		require.Len(t, got, 2)
		assert.Equal(t, "Friday", got[0].Key)
		assert.Equal(t, "Saturday", got[1].Key)
	})
}

func joined(id, date, status string) JoinedRecord {
	rec := domain.AttendanceRecord{
		EmployeeID: id,
		Date:       domain.NewValue(date),
		Status:     domain.NewValue(status),
	}
	return JoinAttendance([]domain.AttendanceRecord{rec},
		[]domain.EmployeeMasterRecord{{EmployeeID: id}})[0]
}

func TestTrends(t *testing.T) {
	ds := fixtureDataset(t)
	records := Filter{}.Apply(ds.Joined)

	daily := DailyTrend(records)
	assert.Equal(t, []TrendPoint{
		{Period: "2024-07-01", Counts: map[string]int{"Present": 1, "Absent": 1}},
		{Period: "2024-07-02", Counts: map[string]int{"Wfh": 1, "Present": 1}},
		{Period: "2024-07-03", Counts: map[string]int{"Leave": 1, "Present": 1}},
	}, daily)

	monthly := MonthlyTrend(records)
	assert.Equal(t, []TrendPoint{
		{Period: "2024-07", Counts: map[string]int{"Present": 3, "Wfh": 1, "Leave": 1, "Absent": 1}},
	}, monthly)

	assert.Equal(t, []PeriodCount{{Period: "2024-07", Count: 1}}, WFHTrend(records))
}

func TestEmployeeStats(t *testing.T) {
	ds := fixtureDataset(t)
	stats := EmployeeStats(Filter{}.Apply(ds.Joined))

	require.Len(t, stats, 3)
	assert.Equal(t, EmployeeStat{
		EmployeeID:  "E001",
		Name:        domain.NewValue("Asha Rao"),
		Department:  domain.NewValue("HR"),
		Location:    domain.NewValue("Bengaluru"),
		TotalDays:   3,
		PresentDays: 1,
		WFHDays:     1,
		LeaveDays:   1,
		PresentRate: 66.67,
	}, stats[0])
	assert.Equal(t, 50.0, stats[1].PresentRate)
	// Employees without a location stay in the table
	assert.Equal(t, "E003", stats[2].EmployeeID)
	assert.False(t, stats[2].Location.Valid)

	records := EmployeeStatRecords(stats)
	assert.Equal(t, []string{"E001", "Asha Rao", "HR", "Bengaluru", "3", "1", "1", "1", "0", "66.67"}, records[0])
	assert.Len(t, EmployeeStatColumns, len(records[0]))

	cells := EmployeeStatCells(stats)
	assert.Nil(t, cells[2][3])
}

func TestDepartmentDistribution(t *testing.T) {
	ds := fixtureDataset(t)
	dist := DepartmentDistribution(Filter{}.Apply(ds.Joined))

	require.Len(t, dist, 3)
	assert.Equal(t, BoxStats{
		Department: "HR", Employees: 1,
		Min: 66.67, Q1: 66.67, Median: 66.67, Q3: 66.67, Max: 66.67,
	}, dist[0])
}

func TestQuantile(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	assert.Equal(t, 17.5, quantile(values, 0.25))
	assert.Equal(t, 25.0, quantile(values, 0.5))
	assert.Equal(t, 32.5, quantile(values, 0.75))
	assert.Equal(t, 10.0, quantile(values, 0))
	assert.Equal(t, 40.0, quantile(values, 1))
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.5))
}

func TestDataset_Drilldown(t *testing.T) {
	ds := fixtureDataset(t)

	t.Run("employee with records", func(t *testing.T) {
		dd, err := ds.Drilldown("Asha Rao", Filter{}, 2)
		require.NoError(t, err)

		assert.Equal(t, "E001", dd.EmployeeID)
		assert.Equal(t, 3, dd.TotalRecords)
		assert.Equal(t, 2, dd.PresentDays)
		assert.Equal(t, 1, dd.WFHDays)
		assert.Equal(t, 1, dd.LeaveDays)
		assert.Equal(t, 0, dd.AbsentDays)
		assert.Equal(t, 66.67, dd.PresentRate)
		assert.Equal(t, 33.33, dd.LeaveRate)

		require.Len(t, dd.Heatmap, 1)
		row := dd.Heatmap[0]
		assert.Equal(t, "2024-W27", row.Week)
		require.NotNil(t, row.Days[0])
		assert.Equal(t, 1.0, *row.Days[0])
		assert.Equal(t, 1.0, *row.Days[1])
		assert.Equal(t, 0.5, *row.Days[2])
		for i := 3; i < 7; i++ {
			assert.Nil(t, row.Days[i])
		}

		require.Len(t, dd.Recent, 2)
		assert.Equal(t, "2024-07-03", dd.Recent[0].Date.String)
		assert.Equal(t, "2024-07-02", dd.Recent[1].Date.String)
	})

	t.Run("date range", func(t *testing.T) {
		dd, err := ds.Drilldown("Asha Rao", Filter{From: day("2024-07-03")}, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, dd.TotalRecords)
		assert.Equal(t, 0.0, dd.PresentRate)
		assert.Equal(t, 100.0, dd.LeaveRate)
	})

	t.Run("employee without records", func(t *testing.T) {
		dd, err := ds.Drilldown("Rahul Das", Filter{}, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, dd.TotalRecords)
		assert.Equal(t, 0.0, dd.PresentRate)
		assert.Empty(t, dd.Heatmap)
		assert.Empty(t, dd.Recent)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := ds.Drilldown("Nobody", Filter{}, 10)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	})
}

func TestHeatmapOrdersWeeksAcrossYears(t *testing.T) {
	rows := []domain.AttendanceRecord{
		{EmployeeID: "E1", Date: domain.NewValue("2025-01-06"), Status: domain.NewValue("Absent")},
		{EmployeeID: "E1", Date: domain.NewValue("2024-12-02"), Status: domain.NewValue("Present")},
		{EmployeeID: "E1", Date: domain.NewValue("2024-12-02"), Status: domain.NewValue("Leave")},
	}

	hm := heatmap(rows)
	require.Len(t, hm, 2)
	assert.Equal(t, "2024-W49", hm[0].Week)
	assert.Equal(t, 0.75, *hm[0].Days[0])
	assert.Equal(t, "2025-W2", hm[1].Week)
	assert.Equal(t, 0.0, *hm[1].Days[0])
}
