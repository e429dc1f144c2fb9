package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"attendcli/pkg/contracts/domain"
)

var hundred = decimal.NewFromInt(100)

// Summarizer computes per-employee attendance metrics
type Summarizer struct {
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// NewSummarizer creates a new summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		logger:   logger,
		recorder: noopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
}

// WithRecorder sets the recorder receiving stage durations
func (s *Summarizer) WithRecorder(r Recorder) *Summarizer {
	if r != nil {
		s.recorder = r
	}
	return s
}

// ComputeMetrics groups the cleaned attendance table by employee and joins the
// cleaned master attributes. See MetricsFromRecords.
func (s *Summarizer) ComputeMetrics(ctx context.Context, attendance, master *Table) ([]domain.EmployeeMetrics, error) {
	ctx, span := s.tracer.Start(ctx, "dataprocessing.ComputeMetrics")
	defer span.End()
	start := time.Now()

	records, err := AttendanceRecords(attendance)
	if err != nil {
		return nil, spanError(span, err)
	}
	employees, err := MasterRecords(master)
	if err != nil {
		return nil, spanError(span, err)
	}

	metrics, stats := MetricsFromRecords(records, employees)

	if stats.MissingID > 0 {
		s.logger.WarnContext(ctx, "Attendance rows without EmployeeID skipped",
			slog.Int("rows", stats.MissingID))
	}
	if stats.Uncounted > 0 {
		s.logger.WarnContext(ctx, "Attendance rows with unrecognized status not counted",
			slog.Int("rows", stats.Uncounted))
	}
	for _, id := range stats.DuplicateMaster {
		s.logger.WarnContext(ctx, "Duplicate employee master record ignored",
			slog.String("employee_id", id))
	}

	s.recorder.StageDuration(ctx, "compute_metrics", time.Since(start))
	span.SetAttributes(attribute.Int("employees", len(metrics)))
	s.logger.InfoContext(ctx, "Employee metrics computed",
		slog.Int("employees", len(metrics)),
		slog.Int("attendance_rows", len(records)))
	return metrics, nil
}

// JoinStats describes rows the aggregation could not use
type JoinStats struct {
	MissingID       int
	Uncounted       int
	DuplicateMaster []string
}

// MetricsFromRecords counts each employee's days per status and left joins the
// master attributes. Every EmployeeID present in records appears exactly once,
// ordered by EmployeeID. Total_Days is the sum of the four status counts; rows
// with a missing or unrecognized status are reported in JoinStats.Uncounted.
// The first master record of an EmployeeID wins.
func MetricsFromRecords(records []domain.AttendanceRecord, employees []domain.EmployeeMasterRecord) ([]domain.EmployeeMetrics, JoinStats) {
	var stats JoinStats

	byID := make(map[string]*domain.EmployeeMetrics)
	order := make([]string, 0)
	for _, r := range records {
		if r.EmployeeID == "" {
			stats.MissingID++
			continue
		}
		m, ok := byID[r.EmployeeID]
		if !ok {
			m = &domain.EmployeeMetrics{EmployeeID: r.EmployeeID}
			byID[r.EmployeeID] = m
			order = append(order, r.EmployeeID)
		}

		switch r.Status.OrEmpty() {
		case domain.StatusPresent:
			m.PresentDays++
		case domain.StatusWFH:
			m.WFHDays++
		case domain.StatusLeave:
			m.LeaveDays++
		case domain.StatusAbsent:
			m.AbsentDays++
		default:
			stats.Uncounted++
		}
	}

	master := IndexMaster(employees, func(id string) {
		stats.DuplicateMaster = append(stats.DuplicateMaster, id)
	})

	sort.SliceStable(order, func(i, j int) bool { return NaturalLess(order[i], order[j]) })

	metrics := make([]domain.EmployeeMetrics, 0, len(order))
	for _, id := range order {
		m := byID[id]
		if e, ok := master[id]; ok {
			m.Name = e.Name
			m.Department = e.Department
			m.Designation = e.Designation
			m.Location = e.Location
			m.Status = e.Status
		}
		m.TotalDays = m.PresentDays + m.WFHDays + m.LeaveDays + m.AbsentDays
		m.PresentPercentage = Percentage(m.PresentDays+m.WFHDays, m.TotalDays)
		m.LeavePercentage = Percentage(m.LeaveDays, m.TotalDays)
		m.AbsentPercentage = Percentage(m.AbsentDays, m.TotalDays)
		metrics = append(metrics, *m)
	}
	return metrics, stats
}

// IndexMaster maps EmployeeID to its first master record. onDuplicate, when
// set, is called with every later repeated ID.
func IndexMaster(employees []domain.EmployeeMasterRecord, onDuplicate func(id string)) map[string]domain.EmployeeMasterRecord {
	index := make(map[string]domain.EmployeeMasterRecord, len(employees))
	for _, e := range employees {
		if e.EmployeeID == "" {
			continue
		}
		if _, dup := index[e.EmployeeID]; dup {
			if onDuplicate != nil {
				onDuplicate(e.EmployeeID)
			}
			continue
		}
		index[e.EmployeeID] = e
	}
	return index
}

// Percentage returns part/total*100 rounded to two decimals, and 0 when total is zero
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}

// Round2 rounds to two decimals half away from zero
func Round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// NaturalLess orders strings comparing embedded digit runs numerically,
// so E2 sorts before E10.
func NaturalLess(a, b string) bool {
	for a != "" && b != "" {
		ad, bd := isDigit(a[0]), isDigit(b[0])
		switch {
		case ad && bd:
			na, ra := splitDigits(a)
			nb, rb := splitDigits(b)
			ta, tb := strings.TrimLeft(na, "0"), strings.TrimLeft(nb, "0")
			if len(ta) != len(tb) {
				return len(ta) < len(tb)
			}
			if ta != tb {
				return ta < tb
			}
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			a, b = ra, rb
		case a[0] != b[0]:
			return a[0] < b[0]
		default:
			a, b = a[1:], b[1:]
		}
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
