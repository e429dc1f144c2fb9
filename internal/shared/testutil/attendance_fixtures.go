package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// RawAttendanceCSV is a small attendance export using every spelling the cleaner folds.
// E999 has no master record; E004 has a master record but no attendance.
const RawAttendanceCSV = `EmployeeID,Date,Status,InTime,OutTime
E001,01/07/24,present,9.00 AM,6.00 PM
E001,02-07-2024,WFH,09-10,18-05
E001,2024/07/03,Leave,,
E002,01/07/24,Absent,,
E002,02-07-2024,present,10:05,17.30
E003,03.07.2024,present,9.30 AM,not recorded
E003,not a date,Absent,,
E999,01/07/24,Present,09:00,18:00
`

// RawAttendanceRows is the number of data rows in RawAttendanceCSV
const RawAttendanceRows = 8

// RawMasterRows holds the master sheet body in column order
// EmployeeID, Name, Department, Designation, Location, DateOfJoining, Status.
// A nil cell is left empty in the workbook.
var RawMasterRows = [][]interface{}{
	{"E001", "Asha Rao", " Hr ", "Manager", "blr", "15/01/2020", "active"},
	{"E002", "Vikram Shah", "ops", "Analyst", "Bom", "2019/03/10", "ACTIVE"},
	{"E003", "Neha Iyer", "i.t", "Engineer", nil, "01-06-2021", "inactive"},
	{"E004", "Rahul Das", "Fin", "Accountant", "Hyderabaad", 45474, "Active"},
}

// MasterHeader is the header row of the master sheet
var MasterHeader = []interface{}{"EmployeeID", "Name", "Department", "Designation", "Location", "DateOfJoining", "Status"}

// WriteAttendanceCSV writes RawAttendanceCSV into dir and returns its path
func WriteAttendanceCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "Employee_Attendance.csv")
	require.NoError(t, os.WriteFile(path, []byte(RawAttendanceCSV), 0644))
	return path
}

// WriteMasterXLSX writes MasterHeader and RawMasterRows into dir and returns its path
func WriteMasterXLSX(t *testing.T, dir string) string {
	t.Helper()
	return WriteXLSX(t, filepath.Join(dir, "Employees_Master.xlsx"), MasterHeader, RawMasterRows)
}

// WriteXLSX writes a single-sheet workbook at path
func WriteXLSX(t *testing.T, path string, header []interface{}, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		for j, value := range row {
			if value == nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+1, i+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, value))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

// CleanAttendanceCSV is RawAttendanceCSV after cleaning
const CleanAttendanceCSV = `EmployeeID,Date,Status,InTime,OutTime
E001,2024-07-01,Present,09:00,18:00
E001,2024-07-02,Wfh,09:10,18:05
E001,2024-07-03,Leave,,
E002,2024-07-01,Absent,,
E002,2024-07-02,Present,10:05,17:30
E003,2024-07-03,Present,09:30,
E003,,Absent,,
E999,2024-07-01,Present,09:00,18:00
`

// CleanMasterRows is RawMasterRows after cleaning
var CleanMasterRows = [][]interface{}{
	{"E001", "Asha Rao", "HR", "Manager", "Bengaluru", "2020-01-15", "Active"},
	{"E002", "Vikram Shah", "OPERATIONS", "Analyst", "Mumbai", "2019-03-10", "Active"},
	{"E003", "Neha Iyer", "IT", "Engineer", nil, "2021-06-01", "Inactive"},
	{"E004", "Rahul Das", "FINANCE", "Accountant", "Hyderabad", "2024-07-01", "Active"},
}

// WriteCleanFixture writes the cleaned attendance CSV and master workbook into dir
func WriteCleanFixture(t *testing.T, dir string) (attendance, master string) {
	t.Helper()
	attendance = filepath.Join(dir, "Employee_Attendance_Clean.csv")
	require.NoError(t, os.WriteFile(attendance, []byte(CleanAttendanceCSV), 0644))
	master = WriteXLSX(t, filepath.Join(dir, "Employees_Master_Clean.xlsx"), MasterHeader, CleanMasterRows)
	return attendance, master
}
