package dataprocessing

import (
	"sort"
	"time"

	"attendcli/pkg/contracts/domain"
)

// weekdayOrder lists working days first, then the weekend
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	time.Saturday, time.Sunday,
}

// Analyze computes the overall summary, department rollup, rankings and insights
func Analyze(metrics []domain.EmployeeMetrics, opts AnalysisOptions) Analysis {
	return Analysis{
		Options:     opts,
		Overall:     Overall(metrics),
		Departments: DepartmentRollup(metrics),
		Top:         TopN(metrics, opts.TopN, opts.MinDays),
		Bottom:      BottomN(metrics, opts.TopN, opts.MinDays),
		Insights:    ComputeInsights(metrics, opts.AbsenceThreshold),
		Metrics:     metrics,
	}
}

// Overall returns the employee count and mean percentages. Employees without a
// counted day are listed in the count but have no percentage to average.
func Overall(metrics []domain.EmployeeMetrics) OverallStats {
	stats := OverallStats{Employees: len(metrics)}

	var present, leave, absent float64
	var n int
	for _, m := range metrics {
		if !hasCountedDays(m) {
			continue
		}
		present += m.PresentPercentage
		leave += m.LeavePercentage
		absent += m.AbsentPercentage
		n++
	}
	if n == 0 {
		return stats
	}
	stats.MeanPresentPercentage = Round2(present / float64(n))
	stats.MeanLeavePercentage = Round2(leave / float64(n))
	stats.MeanAbsentPercentage = Round2(absent / float64(n))
	return stats
}

// hasCountedDays reports whether the percentages of m are defined
func hasCountedDays(m domain.EmployeeMetrics) bool {
	return m.TotalDays > 0
}

// DepartmentRollup returns the mean present percentage and employee count per
// department, ordered by department. Employees without a department or without
// a counted day are left out.
func DepartmentRollup(metrics []domain.EmployeeMetrics) []DepartmentStat {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, m := range metrics {
		if !m.Department.Valid || !hasCountedDays(m) {
			continue
		}
		sums[m.Department.String] += m.PresentPercentage
		counts[m.Department.String]++
	}

	stats := make([]DepartmentStat, 0, len(counts))
	for dept, n := range counts {
		stats = append(stats, DepartmentStat{
			Department:            dept,
			Employees:             n,
			MeanPresentPercentage: Round2(sums[dept] / float64(n)),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Department < stats[j].Department })
	return stats
}

// TopN returns up to n employees with at least minDays recorded days, highest
// present percentage first. Ties keep EmployeeID order.
func TopN(metrics []domain.EmployeeMetrics, n, minDays int) []domain.EmployeeMetrics {
	return rank(metrics, n, minDays, func(a, b float64) bool { return a > b })
}

// BottomN returns up to n employees with at least minDays recorded days, lowest
// present percentage first. Ties keep EmployeeID order.
func BottomN(metrics []domain.EmployeeMetrics, n, minDays int) []domain.EmployeeMetrics {
	return rank(metrics, n, minDays, func(a, b float64) bool { return a < b })
}

func rank(metrics []domain.EmployeeMetrics, n, minDays int, before func(a, b float64) bool) []domain.EmployeeMetrics {
	eligible := make([]domain.EmployeeMetrics, 0, len(metrics))
	for _, m := range metrics {
		if hasCountedDays(m) && m.TotalDays >= minDays {
			eligible = append(eligible, m)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i].PresentPercentage, eligible[j].PresentPercentage
		if a != b {
			return before(a, b)
		}
		return NaturalLess(eligible[i].EmployeeID, eligible[j].EmployeeID)
	})

	if n < 0 {
		n = 0
	}
	if n > len(eligible) {
		n = len(eligible)
	}
	return eligible[:n]
}

// ComputeInsights counts employees with perfect attendance, with absence above
// threshold percent and with no leave taken
func ComputeInsights(metrics []domain.EmployeeMetrics, threshold float64) Insights {
	in := Insights{AbsenceThreshold: threshold}
	for _, m := range metrics {
		if m.PresentPercentage == 100 {
			in.PerfectAttendance++
		}
		if m.AbsentPercentage > threshold {
			in.HighAbsence++
		}
		if m.LeaveDays == 0 {
			in.NoLeave++
		}
	}
	return in
}

// DepartmentBreakdown returns status shares per department, ordered by department.
// Records without a department are left out.
func DepartmentBreakdown(records []JoinedRecord) []StatusBreakdown {
	return breakdown(records, func(r JoinedRecord) (string, bool) {
		return r.Department.String, r.Department.Valid
	}, nil)
}

// LocationRollup returns status shares per location, ordered by location.
// Records without a location are grouped under UnknownLocation.
func LocationRollup(records []JoinedRecord) []StatusBreakdown {
	return breakdown(records, func(r JoinedRecord) (string, bool) {
		return r.LocationLabel(), true
	}, nil)
}

// WeekdayRollup returns status shares per weekday, Monday first. Weekend days
// only appear when they have records. Undated records are left out.
func WeekdayRollup(records []JoinedRecord) []StatusBreakdown {
	order := make(map[string]int, len(weekdayOrder))
	for i, d := range weekdayOrder {
		order[d.String()] = i
	}
	return breakdown(records, func(r JoinedRecord) (string, bool) {
		day, ok := r.Day()
		if !ok {
			return "", false
		}
		return day.Weekday().String(), true
	}, func(a, b string) bool { return order[a] < order[b] })
}

// breakdown groups records by key. Shares are percentages of the group's
// records that have a status.
func breakdown(records []JoinedRecord, key func(JoinedRecord) (string, bool), less func(a, b string) bool) []StatusBreakdown {
	groups := make(map[string]*StatusBreakdown)
	for _, r := range records {
		k, ok := key(r)
		if !ok || !r.Status.Valid {
			continue
		}
		g, exists := groups[k]
		if !exists {
			g = &StatusBreakdown{Key: k, Counts: make(map[string]int)}
			groups[k] = g
		}
		g.Counts[r.Status.String]++
		g.Total++
	}

	out := make([]StatusBreakdown, 0, len(groups))
	for _, g := range groups {
		g.Shares = make(map[string]float64, len(g.Counts))
		for status, n := range g.Counts {
			g.Shares[status] = Percentage(n, g.Total)
		}
		out = append(out, *g)
	}

	if less == nil {
		less = func(a, b string) bool { return a < b }
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i].Key, out[j].Key) })
	return out
}
