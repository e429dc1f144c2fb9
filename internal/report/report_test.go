package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendcli/internal/dataprocessing"
	"attendcli/internal/shared/testutil"
)

func fixtureDataset(t *testing.T) *dataprocessing.Dataset {
	t.Helper()
	attendance, master := testutil.WriteCleanFixture(t, t.TempDir())

	reader := dataprocessing.NewTableReader(nil)
	att, err := reader.ReadFile(context.Background(), attendance)
	require.NoError(t, err)
	mst, err := reader.ReadFile(context.Background(), master)
	require.NoError(t, err)

	ds, err := dataprocessing.NewDataset(att, mst)
	require.NoError(t, err)
	return ds
}

func TestBuildData(t *testing.T) {
	ds := fixtureDataset(t)
	opts := dataprocessing.AnalysisOptions{MinDays: 1, TopN: 2, AbsenceThreshold: 20}

	data, err := BuildData(context.Background(), ds, opts)
	require.NoError(t, err)

	assert.Equal(t, 4, data.KPIs.TotalEmployees)
	assert.Equal(t, 4, data.Analysis.Overall.Employees)
	assert.Len(t, data.Analysis.Top, 2)
	assert.Len(t, data.StatusByDepartment, 3)
	require.Len(t, data.MonthlyTrend, 1)
	assert.Equal(t, "2024-07", data.MonthlyTrend[0].Period)
	require.Len(t, data.WFHTrend, 1)
	assert.Equal(t, 1, data.WFHTrend[0].Count)
}

func TestBuildData_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildData(ctx, fixtureDataset(t), dataprocessing.DefaultAnalysisOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFRenderer_Render(t *testing.T) {
	data, err := BuildData(context.Background(), fixtureDataset(t), dataprocessing.DefaultAnalysisOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewPDFRenderer(nil).Render(&buf, data))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestPDFRenderer_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPDFRenderer(nil).Render(&buf, &Data{Title: "Empty"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFRenderer_WriteFile(t *testing.T) {
	data, err := BuildData(context.Background(), fixtureDataset(t), dataprocessing.DefaultAnalysisOptions())
	require.NoError(t, err)

	logger, logs := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "reports", "Attendance_Report.pdf")
	require.NoError(t, NewPDFRenderer(logger).WriteFile(context.Background(), path, data))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
	assert.True(t, logs.ContainsMessage("PDF report written"))
}
