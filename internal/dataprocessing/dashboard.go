package dataprocessing

import (
	"fmt"
	"math"
	"sort"
	"time"

	apperrors "attendcli/internal/errors"
	"attendcli/pkg/contracts/domain"
)

const monthLayout = "2006-01"

// heatmapScore weights each status in the drilldown heatmap; other statuses score 0
var heatmapScore = map[string]float64{
	domain.StatusPresent: 1,
	domain.StatusWFH:     1,
	domain.StatusLeave:   0.5,
	domain.StatusAbsent:  0,
}

// Dataset is an immutable snapshot of the cleaned tables and everything derived from them
type Dataset struct {
	Records   []domain.AttendanceRecord
	Employees []domain.EmployeeMasterRecord
	Joined    []JoinedRecord
	Metrics   []domain.EmployeeMetrics
	LoadedAt  time.Time
}

// NewDataset builds a snapshot from the cleaned attendance and master tables
func NewDataset(attendance, master *Table) (*Dataset, error) {
	records, err := AttendanceRecords(attendance)
	if err != nil {
		return nil, err
	}
	employees, err := MasterRecords(master)
	if err != nil {
		return nil, err
	}
	metrics, _ := MetricsFromRecords(records, employees)

	return &Dataset{
		Records:   records,
		Employees: employees,
		Joined:    JoinAttendance(records, employees),
		Metrics:   metrics,
		LoadedAt:  time.Now().UTC(),
	}, nil
}

// JoinAttendance inner joins attendance records with their master records.
// Records of employees missing from the master are dropped.
func JoinAttendance(records []domain.AttendanceRecord, employees []domain.EmployeeMasterRecord) []JoinedRecord {
	master := IndexMaster(employees, nil)

	joined := make([]JoinedRecord, 0, len(records))
	for _, r := range records {
		e, ok := master[r.EmployeeID]
		if !ok {
			continue
		}
		day, hasDay := r.Day()
		joined = append(joined, JoinedRecord{
			AttendanceRecord: r,
			Name:             e.Name,
			Department:       e.Department,
			Location:         e.Location,
			day:              day,
			hasDay:           hasDay,
		})
	}
	return joined
}

// Filter narrows joined records to a date range, departments and locations.
// Zero bounds and empty lists do not filter. UnknownLocation in Locations
// matches records without a location.
type Filter struct {
	From        time.Time
	To          time.Time
	Departments []string
	Locations   []string
}

// Apply returns the dated records matching every criterion
func (f Filter) Apply(records []JoinedRecord) []JoinedRecord {
	departments := toSet(f.Departments)
	locations := toSet(f.Locations)

	out := make([]JoinedRecord, 0, len(records))
	for _, r := range records {
		day, ok := r.Day()
		if !ok || !f.inRange(day) {
			continue
		}
		if departments != nil {
			if !r.Department.Valid {
				continue
			}
			if _, ok := departments[r.Department.String]; !ok {
				continue
			}
		}
		if locations != nil {
			if _, ok := locations[r.LocationLabel()]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func (f Filter) inRange(day time.Time) bool {
	if !f.From.IsZero() && day.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && day.After(f.To) {
		return false
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// FilterOptions lists the values a dashboard filter can choose from
type FilterOptions struct {
	MinDate     string   `json:"min_date,omitempty"`
	MaxDate     string   `json:"max_date,omitempty"`
	Departments []string `json:"departments"`
	Locations   []string `json:"locations"`
}

// Options returns the date bounds, departments and locations present in the joined records
func (d *Dataset) Options() FilterOptions {
	var minDay, maxDay time.Time
	departments := make(map[string]struct{})
	locations := make(map[string]struct{})

	for _, r := range d.Joined {
		if day, ok := r.Day(); ok {
			if minDay.IsZero() || day.Before(minDay) {
				minDay = day
			}
			if day.After(maxDay) {
				maxDay = day
			}
		}
		if r.Department.Valid {
			departments[r.Department.String] = struct{}{}
		}
		locations[r.LocationLabel()] = struct{}{}
	}

	opts := FilterOptions{
		Departments: sortedKeys(departments),
		Locations:   sortedKeys(locations),
	}
	if !minDay.IsZero() {
		opts.MinDate = minDay.Format(domain.DateLayout)
		opts.MaxDate = maxDay.Format(domain.DateLayout)
	}
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KPIs are the headline dashboard figures
type KPIs struct {
	TotalEmployees int     `json:"total_employees"`
	Records        int     `json:"records"`
	PresentRate    float64 `json:"present_rate"`
	LeaveRate      float64 `json:"leave_rate"`
	AbsentRate     float64 `json:"absent_rate"`
}

// KPIs counts master employees and computes status rates over every joined record
func (d *Dataset) KPIs() KPIs {
	kpi := KPIs{TotalEmployees: len(d.Employees), Records: len(d.Joined)}

	var present, leave, absent int
	for _, r := range d.Joined {
		switch {
		case r.IsPresent():
			present++
		case r.Status.OrEmpty() == domain.StatusLeave:
			leave++
		case r.Status.OrEmpty() == domain.StatusAbsent:
			absent++
		}
	}
	kpi.PresentRate = Percentage(present, len(d.Joined))
	kpi.LeaveRate = Percentage(leave, len(d.Joined))
	kpi.AbsentRate = Percentage(absent, len(d.Joined))
	return kpi
}

// TrendPoint holds status counts for one day or month
type TrendPoint struct {
	Period string         `json:"period"`
	Counts map[string]int `json:"counts"`
}

// DailyTrend counts statuses per day in date order
func DailyTrend(records []JoinedRecord) []TrendPoint {
	return trend(records, domain.DateLayout)
}

// MonthlyTrend counts statuses per YYYY-MM month in date order
func MonthlyTrend(records []JoinedRecord) []TrendPoint {
	return trend(records, monthLayout)
}

func trend(records []JoinedRecord, layout string) []TrendPoint {
	points := make(map[string]map[string]int)
	for _, r := range records {
		day, ok := r.Day()
		if !ok || !r.Status.Valid {
			continue
		}
		period := day.Format(layout)
		if points[period] == nil {
			points[period] = make(map[string]int)
		}
		points[period][r.Status.String]++
	}

	out := make([]TrendPoint, 0, len(points))
	for period, counts := range points {
		out = append(out, TrendPoint{Period: period, Counts: counts})
	}
	// Both layouts sort chronologically as strings
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// PeriodCount is a count for one YYYY-MM month
type PeriodCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// WFHTrend counts work from home days per month
func WFHTrend(records []JoinedRecord) []PeriodCount {
	months := make(map[string]int)
	for _, r := range records {
		day, ok := r.Day()
		if !ok || r.Status.OrEmpty() != domain.StatusWFH {
			continue
		}
		months[day.Format(monthLayout)]++
	}

	out := make([]PeriodCount, 0, len(months))
	for period, n := range months {
		out = append(out, PeriodCount{Period: period, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// EmployeeStat is one row of the dashboard employee table
type EmployeeStat struct {
	EmployeeID  string       `json:"EmployeeID"`
	Name        domain.Value `json:"Name"`
	Department  domain.Value `json:"Department"`
	Location    domain.Value `json:"Location"`
	TotalDays   int          `json:"Total_Days"`
	PresentDays int          `json:"Present_Days"`
	WFHDays     int          `json:"WFH_Days"`
	LeaveDays   int          `json:"Leave_Days"`
	AbsentDays  int          `json:"Absent_Days"`
	PresentRate float64      `json:"Present_Rate"`
}

// EmployeeStatColumns is the column order of employee table exports
var EmployeeStatColumns = []string{
	domain.ColEmployeeID, domain.ColName, domain.ColDepartment, domain.ColLocation,
	domain.ColTotalDays, domain.ColPresentDays, domain.ColWFHDays, domain.ColLeaveDays,
	domain.ColAbsentDays, "Present_Rate",
}

// EmployeeStats counts each employee's statuses in the given records, ordered by EmployeeID.
// Total_Days counts records that have a status.
func EmployeeStats(records []JoinedRecord) []EmployeeStat {
	byID := make(map[string]*EmployeeStat)
	for _, r := range records {
		if !r.Status.Valid {
			continue
		}
		s, ok := byID[r.EmployeeID]
		if !ok {
			s = &EmployeeStat{
				EmployeeID: r.EmployeeID,
				Name:       r.Name,
				Department: r.Department,
				Location:   r.Location,
			}
			byID[r.EmployeeID] = s
		}
		s.TotalDays++
		switch r.Status.String {
		case domain.StatusPresent:
			s.PresentDays++
		case domain.StatusWFH:
			s.WFHDays++
		case domain.StatusLeave:
			s.LeaveDays++
		case domain.StatusAbsent:
			s.AbsentDays++
		}
	}

	out := make([]EmployeeStat, 0, len(byID))
	for _, s := range byID {
		s.PresentRate = Percentage(s.PresentDays+s.WFHDays, s.TotalDays)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return NaturalLess(out[i].EmployeeID, out[j].EmployeeID) })
	return out
}

// EmployeeStatRecords renders employee stats as CSV records in EmployeeStatColumns order
func EmployeeStatRecords(stats []EmployeeStat) [][]string {
	out := make([][]string, len(stats))
	for i, s := range stats {
		out[i] = []string{
			s.EmployeeID, s.Name.OrEmpty(), s.Department.OrEmpty(), s.Location.OrEmpty(),
			fmt.Sprint(s.TotalDays), fmt.Sprint(s.PresentDays), fmt.Sprint(s.WFHDays),
			fmt.Sprint(s.LeaveDays), fmt.Sprint(s.AbsentDays), fmt.Sprintf("%.2f", s.PresentRate),
		}
	}
	return out
}

// EmployeeStatCells renders employee stats as typed spreadsheet rows
func EmployeeStatCells(stats []EmployeeStat) [][]interface{} {
	out := make([][]interface{}, len(stats))
	for i, s := range stats {
		out[i] = []interface{}{
			s.EmployeeID, nullable(s.Name), nullable(s.Department), nullable(s.Location),
			s.TotalDays, s.PresentDays, s.WFHDays, s.LeaveDays, s.AbsentDays, s.PresentRate,
		}
	}
	return out
}

func nullable(v domain.Value) interface{} {
	if !v.Valid {
		return nil
	}
	return v.String
}

// BoxStats summarizes the present percentage distribution of one department
type BoxStats struct {
	Department string  `json:"department"`
	Employees  int     `json:"employees"`
	Min        float64 `json:"min"`
	Q1         float64 `json:"q1"`
	Median     float64 `json:"median"`
	Q3         float64 `json:"q3"`
	Max        float64 `json:"max"`
}

// DepartmentDistribution returns quartiles of per-employee present rates per department
func DepartmentDistribution(records []JoinedRecord) []BoxStats {
	rates := make(map[string][]float64)
	for _, s := range EmployeeStats(records) {
		if !s.Department.Valid {
			continue
		}
		rates[s.Department.String] = append(rates[s.Department.String], s.PresentRate)
	}

	out := make([]BoxStats, 0, len(rates))
	for dept, values := range rates {
		sort.Float64s(values)
		out = append(out, BoxStats{
			Department: dept,
			Employees:  len(values),
			Min:        values[0],
			Q1:         Round2(quantile(values, 0.25)),
			Median:     Round2(quantile(values, 0.5)),
			Q3:         Round2(quantile(values, 0.75)),
			Max:        values[len(values)-1],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// quantile interpolates linearly between the closest ranks of sorted values
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := math.Floor(pos)
	hi := math.Ceil(pos)
	if lo == hi {
		return sorted[int(lo)]
	}
	return sorted[int(lo)] + (pos-lo)*(sorted[int(hi)]-sorted[int(lo)])
}

// HeatmapRow scores one ISO week, Monday first. Days without records are nil.
type HeatmapRow struct {
	Week string      `json:"week"`
	Days [7]*float64 `json:"days"`

	year, week int
}

// Drilldown is the detail view of one employee
type Drilldown struct {
	EmployeeID   string                    `json:"employee_id"`
	Name         string                    `json:"name"`
	TotalRecords int                       `json:"total_records"`
	PresentDays  int                       `json:"present_days"`
	WFHDays      int                       `json:"wfh_days"`
	LeaveDays    int                       `json:"leave_days"`
	AbsentDays   int                       `json:"absent_days"`
	PresentRate  float64                   `json:"present_rate"`
	LeaveRate    float64                   `json:"leave_rate"`
	Heatmap      []HeatmapRow              `json:"heatmap"`
	Recent       []domain.AttendanceRecord `json:"recent"`
}

// Drilldown returns the detail view of the first master employee with the given
// name, over dated records inside the filter's date range. PresentDays counts
// office and work from home days. Recent holds at most recent records, newest first,
// or every record when recent is not positive.
func (d *Dataset) Drilldown(name string, f Filter, recent int) (*Drilldown, error) {
	var employee *domain.EmployeeMasterRecord
	for i := range d.Employees {
		if d.Employees[i].Name.Valid && d.Employees[i].Name.String == name {
			employee = &d.Employees[i]
			break
		}
	}
	if employee == nil {
		return nil, apperrors.NewNotFoundError("employee " + name).WithContext("name", name)
	}

	var rows []domain.AttendanceRecord
	for _, r := range d.Records {
		if r.EmployeeID != employee.EmployeeID {
			continue
		}
		day, ok := r.Day()
		if !ok || !f.inRange(day) {
			continue
		}
		rows = append(rows, r)
	}

	dd := &Drilldown{
		EmployeeID:   employee.EmployeeID,
		Name:         name,
		TotalRecords: len(rows),
		Heatmap:      []HeatmapRow{},
		Recent:       []domain.AttendanceRecord{},
	}
	for _, r := range rows {
		switch r.Status.OrEmpty() {
		case domain.StatusPresent:
			dd.PresentDays++
		case domain.StatusWFH:
			dd.PresentDays++
			dd.WFHDays++
		case domain.StatusLeave:
			dd.LeaveDays++
		case domain.StatusAbsent:
			dd.AbsentDays++
		}
	}
	dd.PresentRate = Percentage(dd.PresentDays, dd.TotalRecords)
	dd.LeaveRate = Percentage(dd.LeaveDays, dd.TotalRecords)
	dd.Heatmap = heatmap(rows)

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.String > rows[j].Date.String
	})
	if recent > 0 && len(rows) > recent {
		rows = rows[:recent]
	}
	dd.Recent = append(dd.Recent, rows...)
	return dd, nil
}

// heatmap averages status scores per ISO week and weekday, weeks in calendar order
func heatmap(rows []domain.AttendanceRecord) []HeatmapRow {
	type cell struct {
		sum float64
		n   int
	}
	type weekKey struct{ year, week int }
	cells := make(map[weekKey]*[7]cell)

	for _, r := range rows {
		day, ok := r.Day()
		if !ok {
			continue
		}
		year, week := day.ISOWeek()
		k := weekKey{year, week}
		if cells[k] == nil {
			cells[k] = &[7]cell{}
		}
		// Monday is column 0
		col := (int(day.Weekday()) + 6) % 7
		cells[k][col].sum += heatmapScore[r.Status.OrEmpty()]
		cells[k][col].n++
	}

	out := make([]HeatmapRow, 0, len(cells))
	for k, week := range cells {
		row := HeatmapRow{Week: fmt.Sprintf("%d-W%d", k.year, k.week), year: k.year, week: k.week}
		for i, c := range week {
			if c.n == 0 {
				continue
			}
			mean := c.sum / float64(c.n)
			row.Days[i] = &mean
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].year != out[j].year {
			return out[i].year < out[j].year
		}
		return out[i].week < out[j].week
	})
	return out
}
