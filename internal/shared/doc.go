// Package shared holds helpers used across the attendance packages.
//
// The testutil subpackage provides:
//
//	- a buffered slog handler for asserting on log output
//	- raw attendance and master fixtures written as CSV and XLSX files
//
// Example usage:
//
//	func TestClean(t *testing.T) {
//	    dir := t.TempDir()
//	    attendance := testutil.WriteAttendanceCSV(t, dir)
//	    master := testutil.WriteMasterXLSX(t, dir)
//	    ...
//	}
package shared
