// Package dataprocessing turns raw attendance and employee master tables into
// cleaned tables, per-employee metrics and the rollups reports are built from.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Parser: reads CSV and XLSX files into in-memory Tables
// 2. Cleaner: applies the normalize package column by column to both tables
// 3. Summarizer: groups attendance by employee and joins the master attributes
// 4. Analytics and Dashboard: department, location and weekday rollups, rankings,
// trends and single employee drilldowns
//
// # Usage
//
// Cleaning both inputs and persisting the result:
//
//	cleaner := dataprocessing.NewCleaner(logger, nil)
//	result, err := cleaner.CleanAndSave(ctx, dataprocessing.CleanPaths{
//	    AttendanceIn:  "data/Employee_Attendance.csv",
//	    MasterIn:      "data/Employees_Master.xlsx",
//	    AttendanceOut: "Employee_Attendance_Clean.csv",
//	    MasterOut:     "Employees_Master_Clean.xlsx",
//	})
//
// Computing metrics from the cleaned snapshot:
//
//	metrics, err := dataprocessing.NewSummarizer(logger).ComputeMetrics(ctx, result.Attendance, result.Master)
//	top := dataprocessing.TopN(metrics, 5, 5)
//
// # Data Flow
//
//	Raw CSV/XLSX → Parser → Table → Cleaner → Cleaned Table → Summarizer → EmployeeMetrics → Analytics
//
// # Error Handling
//
// Cell level problems never fail a run: a value no normalizer can interpret
// becomes a missing cell. Structural problems such as an absent file, an
// unreadable workbook or a missing required column are returned as
// *errors.AppError values and abort the run.
package dataprocessing
