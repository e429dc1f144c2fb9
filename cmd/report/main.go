// Command report renders the attendance PDF report from the cleaned tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"attendcli/internal/config"
	"attendcli/internal/dataprocessing"
	"attendcli/internal/infrastructure"
	"attendcli/internal/report"
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

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	attendancePath := fs.String("attendance", paths.AttendanceClean, "cleaned attendance table")
	masterPath := fs.String("master", paths.MasterClean, "cleaned employee master table")
	out := fs.String("out", paths.PDFReport, "PDF output path")
	minDays := fs.Int("min-days", cfg.Analysis.MinDays, "minimum recorded days to appear in the rankings")
	top := fs.Int("top", cfg.Analysis.TopN, "employees listed in each ranking")
	threshold := fs.Float64("threshold", cfg.Analysis.AbsenceThreshold, "absence percentage counted as high")
	title := fs.String("title", "", "report title")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := infrastructure.WithComponent(infrastructure.NewLogger(stderr, cfg.Logging), "report")
	ctx := infrastructure.EnsureTraceID(context.Background())

	ds, err := loadDataset(ctx, logger, *attendancePath, *masterPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	data, err := report.BuildData(ctx, ds, dataprocessing.AnalysisOptions{
		MinDays:          *minDays,
		TopN:             *top,
		AbsenceThreshold: *threshold,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *title != "" {
		data.Title = *title
	}

	if err := report.NewPDFRenderer(logger).WriteFile(ctx, *out, data); err != nil {
		logger.ErrorContext(ctx, "Report generation failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "PDF report has been saved to '%s'\n", *out)
	return 0
}

// loadDataset reads both cleaned tables concurrently
func loadDataset(ctx context.Context, logger *slog.Logger, attendancePath, masterPath string) (*dataprocessing.Dataset, error) {
	reader := dataprocessing.NewTableReader(logger)

	var attendance, master *dataprocessing.Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := reader.ReadFile(gctx, attendancePath)
		attendance = t
		return err
	})
	g.Go(func() error {
		t, err := reader.ReadFile(gctx, masterPath)
		master = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dataprocessing.NewDataset(attendance, master)
}
