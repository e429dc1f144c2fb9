// Package report renders the printable attendance report: headline KPIs,
// department averages, top and bottom performers, insights and two charts
// (status share per department and monthly status counts), drawn with gofpdf.
package report
