// Command analyzer computes per-employee attendance metrics from the cleaned
// tables, prints the overall, department and ranking summaries and saves the
// metrics workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"attendcli/internal/config"
	"attendcli/internal/console"
	"attendcli/internal/dataprocessing"
	"attendcli/internal/exporter"
	"attendcli/internal/infrastructure"
	"attendcli/pkg/contracts"
	"attendcli/pkg/contracts/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	paths, err := cfg.GetPaths()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("analyzer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	attendancePath := fs.String("attendance", paths.AttendanceClean, "cleaned attendance table")
	masterPath := fs.String("master", paths.MasterClean, "cleaned employee master table")
	out := fs.String("out", paths.AnalysisReport, "metrics output (.xlsx, .csv or .json)")
	minDays := fs.Int("min-days", cfg.Analysis.MinDays, "minimum recorded days to appear in the rankings")
	top := fs.Int("top", cfg.Analysis.TopN, "employees listed in each ranking")
	threshold := fs.Float64("threshold", cfg.Analysis.AbsenceThreshold, "absence percentage counted as high")
	jsonOut := fs.Bool("json", false, "print the metrics table as JSON instead of the summary")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := infrastructure.WithComponent(infrastructure.NewLogger(stderr, cfg.Logging), "analyzer")
	ctx := infrastructure.EnsureTraceID(context.Background())

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer providers.Shutdown(context.WithoutCancel(ctx))

	recorder, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	reader := dataprocessing.NewTableReader(logger)
	attendance, err := reader.ReadFile(ctx, *attendancePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	master, err := reader.ReadFile(ctx, *masterPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	metrics, err := dataprocessing.NewSummarizer(logger).WithRecorder(recorder).ComputeMetrics(ctx, attendance, master)
	if err != nil {
		logger.ErrorContext(ctx, "Metrics computation failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *jsonOut {
		if err := exporter.WriteMetricsJSON(stdout, metrics); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		analysis := dataprocessing.Analyze(metrics, dataprocessing.AnalysisOptions{
			MinDays:          *minDays,
			TopN:             *top,
			AbsenceThreshold: *threshold,
		})
		if err := printAnalysis(stdout, analysis); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := exporter.NewMetricsExporter(logger).Export(ctx, *out, metrics); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !*jsonOut {
		fmt.Fprintf(stdout, "\nDetailed analysis has been saved to '%s'\n", *out)
	}
	return 0
}

func printAnalysis(w io.Writer, a dataprocessing.Analysis) error {
	console.Section(w, "Overall Attendance Statistics:")
	fmt.Fprintf(w, "Total Employees: %d\n", a.Overall.Employees)
	fmt.Fprintf(w, "Average Present Percentage: %.2f%%\n", a.Overall.MeanPresentPercentage)
	fmt.Fprintf(w, "Average Leave Percentage: %.2f%%\n", a.Overall.MeanLeavePercentage)
	fmt.Fprintf(w, "Average Absent Percentage: %.2f%%\n", a.Overall.MeanAbsentPercentage)

	console.Section(w, "Department-wise Average Present Percentage:")
	depts := console.NewTable("Department", "Present_Percentage", "Employee_Count").AlignRight(1, 2)
	for _, d := range a.Departments {
		depts.Append(d.Department, console.Percent(d.MeanPresentPercentage), strconv.Itoa(d.Employees))
	}
	if err := depts.Render(w); err != nil {
		return err
	}

	console.Section(w, fmt.Sprintf("Top %d Employees by Attendance:", a.Options.TopN))
	if err := rankingTable(a.Top).Render(w); err != nil {
		return err
	}
	console.Section(w, fmt.Sprintf("Bottom %d Employees by Attendance:", a.Options.TopN))
	if err := rankingTable(a.Bottom).Render(w); err != nil {
		return err
	}

	console.Section(w, "Additional Insights:")
	fmt.Fprintf(w, "1. Employees with 100%% Attendance (Present + WFH): %d\n", a.Insights.PerfectAttendance)
	fmt.Fprintf(w, "2. Employees with more than %g%% Absence: %d\n", a.Insights.AbsenceThreshold, a.Insights.HighAbsence)
	fmt.Fprintf(w, "3. Employees with no leaves taken: %d\n", a.Insights.NoLeave)
	return nil
}

func rankingTable(metrics []domain.EmployeeMetrics) *console.Table {
	t := console.NewTable(
		domain.ColEmployeeID, domain.ColName, domain.ColDepartment,
		domain.ColTotalDays, domain.ColPresentPercentage,
	).AlignRight(3, 4)
	for _, m := range metrics {
		t.Append(
			m.EmployeeID,
			console.Cell(m.Name.String, m.Name.Valid),
			console.Cell(m.Department.String, m.Department.Valid),
			strconv.Itoa(m.TotalDays),
			console.Percent(m.PresentPercentage),
		)
	}
	return t
}
