// Command cleaner normalizes the raw attendance CSV and employee master
// workbook and writes the cleaned copies. With -inspect it only prints the
// layout of the raw inputs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"attendcli/internal/config"
	"attendcli/internal/console"
	"attendcli/internal/dataprocessing"
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

	fs := flag.NewFlagSet("cleaner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	attendanceIn := fs.String("attendance", paths.AttendanceRaw, "raw attendance CSV or XLSX")
	masterIn := fs.String("master", paths.MasterRaw, "raw employee master XLSX or CSV")
	attendanceOut := fs.String("out-attendance", paths.AttendanceClean, "cleaned attendance output")
	masterOut := fs.String("out-master", paths.MasterClean, "cleaned employee master output")
	inspect := fs.Bool("inspect", false, "print column info and first rows of the raw inputs, then exit")
	head := fs.Int("rows", 5, "rows to print from each table")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := infrastructure.WithComponent(infrastructure.NewLogger(stderr, cfg.Logging), "cleaner")
	ctx := infrastructure.EnsureTraceID(context.Background())

	if *inspect {
		if err := inspectInputs(ctx, stdout, logger, *attendanceIn, *masterIn, *head); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fmt.Fprintln(stderr, "Please make sure both files exist in the correct format (CSV/Excel)")
			return 1
		}
		return 0
	}

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

	fmt.Fprintln(stdout, "Cleaning attendance data...")
	cleaner := dataprocessing.NewCleaner(logger, recorder)
	result, err := cleaner.CleanAndSave(ctx, dataprocessing.CleanPaths{
		AttendanceIn:  *attendanceIn,
		MasterIn:      *masterIn,
		AttendanceOut: *attendanceOut,
		MasterOut:     *masterOut,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Cleaning failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := printSummary(stdout, result, *head); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "\nCleaned files written:\n  %s\n  %s\n", *attendanceOut, *masterOut)
	return 0
}

func printSummary(w io.Writer, result dataprocessing.CleanResult, head int) error {
	fmt.Fprintln(w, "\nCleaned Data Summary:")

	console.Section(w, "Employee Attendance Dataset:")
	if err := tableOf(result.Attendance.Head(head)).Render(w); err != nil {
		return err
	}
	console.Section(w, "Null values in Attendance:")
	if err := missingTable(result.Attendance.Columns, result.AttendanceMissing).Render(w); err != nil {
		return err
	}

	console.Section(w, "Employee Master Dataset:")
	if err := tableOf(result.Master.Head(head)).Render(w); err != nil {
		return err
	}
	console.Section(w, "Null values in Master:")
	if err := missingTable(result.Master.Columns, result.MasterMissing).Render(w); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Unique Departments: %s\n", list(result.Master.Unique(domain.ColDepartment)))
	fmt.Fprintf(w, "Unique Locations: %s\n", list(result.Master.Unique(domain.ColLocation)))
	fmt.Fprintf(w, "Unique Status Values (Master): %s\n", list(result.Master.Unique(domain.ColStatus)))
	fmt.Fprintf(w, "Unique Status Values (Attendance): %s\n", list(result.Attendance.Unique(domain.ColStatus)))
	return nil
}

func inspectInputs(ctx context.Context, w io.Writer, logger *slog.Logger, attendancePath, masterPath string, head int) error {
	reader := dataprocessing.NewTableReader(logger)

	inputs := []struct {
		title string
		label string
		path  string
	}{
		{title: "Employee Attendance Dataset", label: "attendance", path: attendancePath},
		{title: "Employee Master Dataset", label: "master", path: masterPath},
	}

	for _, in := range inputs {
		table, err := reader.ReadFile(ctx, in.path)
		if err != nil {
			return err
		}

		console.Section(w, in.title+" Info:")
		fmt.Fprintf(w, "File: %s\nRows: %d, Columns: %d\n", in.path, table.Len(), len(table.Columns))
		if err := columnInfo(table).Render(w); err != nil {
			return err
		}

		fmt.Fprintf(w, "\nFirst few rows of %s data:\n", in.label)
		if err := tableOf(table.Head(head)).Render(w); err != nil {
			return err
		}
	}
	return nil
}

func tableOf(t *dataprocessing.Table) *console.Table {
	out := console.NewTable(t.Columns...)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = console.Cell(v.String, v.Valid)
		}
		out.Append(cells...)
	}
	return out
}

func missingTable(columns []string, counts map[string]int) *console.Table {
	out := console.NewTable("Column", "Missing").AlignRight(1)
	for _, c := range columns {
		out.Append(c, strconv.Itoa(counts[c]))
	}
	return out
}

func columnInfo(t *dataprocessing.Table) *console.Table {
	missing := t.MissingCounts()
	out := console.NewTable("#", "Column", "Non-Null Count", "Distinct").AlignRight(0, 2, 3)
	for i, c := range t.Columns {
		out.Append(
			strconv.Itoa(i),
			c,
			fmt.Sprintf("%d non-null", t.Len()-missing[c]),
			strconv.Itoa(len(t.Unique(c))),
		)
	}
	return out
}

func list(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
