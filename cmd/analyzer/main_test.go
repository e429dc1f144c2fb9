package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"attendcli/internal/exporter"
	"attendcli/internal/shared/testutil"
	"attendcli/pkg/contracts/domain"
)

func TestRun_PrintsAnalysis(t *testing.T) {
	dir := t.TempDir()
	attendance, master := testutil.WriteCleanFixture(t, dir)
	out := filepath.Join(dir, "Employee_Attendance_Analysis_Report.xlsx")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-attendance", attendance,
		"-master", master,
		"-out", out,
		"-min-days", "2",
		"-top", "2",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	text := stdout.String()
	assert.Contains(t, text, "Total Employees: 4")
	assert.Contains(t, text, "Average Present Percentage: 66.67%")
	assert.Contains(t, text, "Average Absent Percentage: 25.00%")
	assert.Contains(t, text, "Top 2 Employees by Attendance:")
	assert.Contains(t, text, "1. Employees with 100% Attendance (Present + WFH): 1")
	assert.Contains(t, text, "2. Employees with more than 20% Absence: 2")
	assert.Contains(t, text, "3. Employees with no leaves taken: 3")
	assert.Contains(t, text, "Detailed analysis has been saved to")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(exporter.MetricsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, domain.MetricsColumns, rows[0])
	assert.Equal(t, "E001", rows[1][0])
}

func TestRun_RankingsRespectMinDays(t *testing.T) {
	dir := t.TempDir()
	attendance, master := testutil.WriteCleanFixture(t, dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-attendance", attendance,
		"-master", master,
		"-out", filepath.Join(dir, "metrics.csv"),
		"-min-days", "3",
		"-top", "5",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	text := stdout.String()
	assert.Contains(t, text, "E001")
	assert.NotContains(t, text, "E999")
	assert.FileExists(t, filepath.Join(dir, "metrics.csv"))
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	attendance, master := testutil.WriteCleanFixture(t, dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-attendance", attendance,
		"-master", master,
		"-out", filepath.Join(dir, "metrics.json"),
		"-json",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var metrics []domain.EmployeeMetrics
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &metrics))
	require.Len(t, metrics, 4)
	assert.Equal(t, "E999", metrics[3].EmployeeID)
	assert.False(t, metrics[3].Name.Valid)
	assert.Equal(t, 100.0, metrics[3].PresentPercentage)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	attendance, master := testutil.WriteCleanFixture(t, dir)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "missing master", args: []string{"-attendance", attendance, "-master", filepath.Join(dir, "none.xlsx")}, code: 1},
		{name: "unsupported output", args: []string{"-attendance", attendance, "-master", master, "-out", filepath.Join(dir, "out.txt")}, code: 1},
		{name: "bad flag value", args: []string{"-top", "many"}, code: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
		})
	}
}
