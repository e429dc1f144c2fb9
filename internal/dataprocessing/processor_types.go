package dataprocessing

import (
	"context"
	"time"

	"attendcli/internal/normalize"
	"attendcli/pkg/contracts/domain"
)

// Processor defines the interface for table transformations
type Processor interface {
	// Process returns a transformed copy of the table, leaving the input untouched
	Process(ctx context.Context, table *Table) (*Table, error)
}

// ColumnRule normalizes every cell of one column
type ColumnRule struct {
	Column    string
	Normalize normalize.Func
}

// AttendanceRules clean the attendance table
var AttendanceRules = []ColumnRule{
	{Column: domain.ColDate, Normalize: normalize.Date},
	{Column: domain.ColInTime, Normalize: normalize.Time},
	{Column: domain.ColOutTime, Normalize: normalize.Time},
	{Column: domain.ColStatus, Normalize: normalize.Status},
}

// MasterRules clean the employee master table
var MasterRules = []ColumnRule{
	{Column: domain.ColDateOfJoining, Normalize: normalize.Date},
	{Column: domain.ColDepartment, Normalize: normalize.Department},
	{Column: domain.ColLocation, Normalize: normalize.Location},
	{Column: domain.ColStatus, Normalize: normalize.Status},
}

// CleanPaths locates the raw inputs and cleaned outputs of one run
type CleanPaths struct {
	AttendanceIn  string
	MasterIn      string
	AttendanceOut string
	MasterOut     string
}

// CleanResult holds the cleaned tables and their missing cell counts per column
type CleanResult struct {
	Attendance        *Table
	Master            *Table
	AttendanceMissing map[string]int
	MasterMissing     map[string]int
}

// Recorder receives pipeline measurements
type Recorder interface {
	RecordsCleaned(ctx context.Context, table string, rows int)
	CellsMissing(ctx context.Context, table, column string, cells int)
	StageDuration(ctx context.Context, stage string, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordsCleaned(context.Context, string, int) {}

func (noopRecorder) CellsMissing(context.Context, string, string, int) {}

func (noopRecorder) StageDuration(context.Context, string, time.Duration) {}
