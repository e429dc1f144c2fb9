package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"attendcli/internal/dataprocessing"
)

// Data is everything the PDF shows
type Data struct {
	Title       string
	GeneratedAt time.Time

	KPIs               dataprocessing.KPIs
	Analysis           dataprocessing.Analysis
	StatusByDepartment []dataprocessing.StatusBreakdown
	MonthlyTrend       []dataprocessing.TrendPoint
	WFHTrend           []dataprocessing.PeriodCount
}

// BuildData computes the report sections from a dataset. The sections are
// independent and computed concurrently.
func BuildData(ctx context.Context, ds *dataprocessing.Dataset, opts dataprocessing.AnalysisOptions) (*Data, error) {
	data := &Data{
		Title:       "Employee Attendance Report",
		GeneratedAt: time.Now(),
		KPIs:        ds.KPIs(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data.Analysis = dataprocessing.Analyze(ds.Metrics, opts)
		return gctx.Err()
	})
	g.Go(func() error {
		data.StatusByDepartment = dataprocessing.DepartmentBreakdown(ds.Joined)
		return gctx.Err()
	})
	g.Go(func() error {
		data.MonthlyTrend = dataprocessing.MonthlyTrend(ds.Joined)
		data.WFHTrend = dataprocessing.WFHTrend(ds.Joined)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}
