package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"attendcli/internal/config"
	"attendcli/internal/dataprocessing"
	apperrors "attendcli/internal/errors"
	"attendcli/internal/exporter"
	"attendcli/pkg/contracts/domain"
)

// Export formats for the employee stats download
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// EmployeeStatsSheet names the worksheet of the XLSX download
const EmployeeStatsSheet = "EmployeeMetrics"

// ErrDataNotLoaded is returned before the first successful Reload
var ErrDataNotLoaded = apperrors.NewUnavailableError("attendance data not loaded")

// Summary is the dashboard landing view
type Summary struct {
	KPIs     dataprocessing.KPIs          `json:"kpis"`
	Filters  dataprocessing.FilterOptions `json:"filters"`
	LoadedAt time.Time                    `json:"loaded_at"`
}

// Rankings holds the best and worst attendance among eligible employees
type Rankings struct {
	N       int                      `json:"n"`
	MinDays int                      `json:"min_days"`
	Top     []domain.EmployeeMetrics `json:"top"`
	Bottom  []domain.EmployeeMetrics `json:"bottom"`
}

// AttendanceService serves dashboard queries from the latest dataset snapshot
type AttendanceService struct {
	attendancePath string
	masterPath     string
	reader         *dataprocessing.TableReader
	analysis       config.AnalysisConfig
	logger         *slog.Logger

	mu      sync.RWMutex
	dataset *dataprocessing.Dataset
}

// NewAttendanceService creates a service reading the cleaned files named by paths.
// No data is loaded until Reload is called.
func NewAttendanceService(paths *config.Paths, analysis config.AnalysisConfig, logger *slog.Logger) *AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "attendance"))

	logger.Info("AttendanceService initialized",
		slog.String("attendance", paths.AttendanceClean),
		slog.String("master", paths.MasterClean))

	return &AttendanceService{
		attendancePath: paths.AttendanceClean,
		masterPath:     paths.MasterClean,
		reader:         dataprocessing.NewTableReader(logger),
		analysis:       analysis,
		logger:         logger,
	}
}

// NewAttendanceServiceWithDataset creates a service over an already built snapshot
func NewAttendanceServiceWithDataset(dataset *dataprocessing.Dataset, analysis config.AnalysisConfig, logger *slog.Logger) *AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceService{
		analysis: analysis,
		logger:   logger,
		dataset:  dataset,
	}
}

// Reload reads both cleaned tables concurrently and swaps in a new snapshot.
// On failure the previous snapshot stays in place.
func (s *AttendanceService) Reload(ctx context.Context) error {
	if s.reader == nil {
		return apperrors.NewConfigError("attendance service has no source files", nil)
	}

	start := time.Now()
	var attendance, master *dataprocessing.Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.reader.ReadFile(gctx, s.attendancePath)
		attendance = t
		return err
	})
	g.Go(func() error {
		t, err := s.reader.ReadFile(gctx, s.masterPath)
		master = t
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "Reload failed", slog.String("error", err.Error()))
		return err
	}

	dataset, err := dataprocessing.NewDataset(attendance, master)
	if err != nil {
		s.logger.ErrorContext(ctx, "Reload failed", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.dataset = dataset
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Reload completed",
		slog.Int("records", len(dataset.Records)),
		slog.Int("employees", len(dataset.Employees)),
		slog.Int("joined", len(dataset.Joined)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Loaded reports whether a snapshot is available and when it was built
func (s *AttendanceService) Loaded() (bool, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return false, time.Time{}
	}
	return true, s.dataset.LoadedAt
}

func (s *AttendanceService) snapshot() (*dataprocessing.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, ErrDataNotLoaded
	}
	return s.dataset, nil
}

// filtered returns the joined records matching f
func (s *AttendanceService) filtered(f dataprocessing.Filter) ([]dataprocessing.JoinedRecord, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return f.Apply(ds.Joined), nil
}

// Summary returns the overall KPIs and the available filter values
func (s *AttendanceService) Summary(ctx context.Context) (*Summary, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return &Summary{
		KPIs:     ds.KPIs(),
		Filters:  ds.Options(),
		LoadedAt: ds.LoadedAt,
	}, nil
}

// Departments returns status shares per department
func (s *AttendanceService) Departments(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.StatusBreakdown, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.DepartmentBreakdown(records), nil
}

// Locations returns status shares per location
func (s *AttendanceService) Locations(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.StatusBreakdown, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.LocationRollup(records), nil
}

// Weekdays returns status shares per weekday
func (s *AttendanceService) Weekdays(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.StatusBreakdown, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.WeekdayRollup(records), nil
}

// DailyTrend returns status counts per day
func (s *AttendanceService) DailyTrend(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.TrendPoint, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.DailyTrend(records), nil
}

// MonthlyTrend returns status counts per month
func (s *AttendanceService) MonthlyTrend(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.TrendPoint, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.MonthlyTrend(records), nil
}

// WFHTrend returns work from home days per month
func (s *AttendanceService) WFHTrend(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.PeriodCount, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.WFHTrend(records), nil
}

// Distribution returns the per-department spread of employee present rates
func (s *AttendanceService) Distribution(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.BoxStats, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.DepartmentDistribution(records), nil
}

// Employees returns per-employee totals over the filtered records
func (s *AttendanceService) Employees(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.EmployeeStat, error) {
	records, err := s.filtered(f)
	if err != nil {
		return nil, err
	}
	return dataprocessing.EmployeeStats(records), nil
}

// ExportEmployees writes the filtered employee stats to w as CSV or XLSX
func (s *AttendanceService) ExportEmployees(ctx context.Context, f dataprocessing.Filter, format string, w io.Writer) error {
	stats, err := s.Employees(ctx, f)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		err = exporter.NewCSVWriter(s.logger).Write(w, exporter.WriteOptions{
			Headers: dataprocessing.EmployeeStatColumns,
			Records: dataprocessing.EmployeeStatRecords(stats),
		})
	case FormatXLSX:
		err = exporter.NewXLSXWriter(s.logger, true).Write(w, exporter.Sheet{
			Name:    EmployeeStatsSheet,
			Headers: dataprocessing.EmployeeStatColumns,
			Rows:    dataprocessing.EmployeeStatCells(stats),
		})
	default:
		return apperrors.NewAppValidationError(fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return apperrors.NewStorageError("failed to write employee export", err)
	}

	s.logger.InfoContext(ctx, "Employee stats exported",
		slog.String("format", format),
		slog.Int("employees", len(stats)))
	return nil
}

// Drilldown returns the detail view of one employee by name
func (s *AttendanceService) Drilldown(ctx context.Context, name string, f dataprocessing.Filter) (*dataprocessing.Drilldown, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ds.Drilldown(name, f, s.analysis.RecentRecords)
}

// Rankings returns the top and bottom n employees by present percentage among
// those with at least minDays counted days. Non-positive arguments fall back to
// the configured analysis defaults.
func (s *AttendanceService) Rankings(ctx context.Context, n, minDays int) (*Rankings, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.analysis.TopN
	}
	if minDays < 0 {
		minDays = s.analysis.MinDays
	}
	return &Rankings{
		N:       n,
		MinDays: minDays,
		Top:     dataprocessing.TopN(ds.Metrics, n, minDays),
		Bottom:  dataprocessing.BottomN(ds.Metrics, n, minDays),
	}, nil
}
