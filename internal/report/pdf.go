package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"

	"attendcli/internal/dataprocessing"
	apperrors "attendcli/internal/errors"
	"attendcli/internal/exporter"
	"attendcli/pkg/contracts/domain"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
	chartWidth = 150.0
	barHeight  = 6.0
	trendTall  = 50.0
)

type rgb struct{ r, g, b int }

// statusColors fills chart segments per status
var statusColors = map[string]rgb{
	domain.StatusPresent: {46, 139, 87},
	domain.StatusWFH:     {68, 114, 196},
	domain.StatusLeave:   {237, 125, 49},
	domain.StatusAbsent:  {192, 0, 0},
}

var headerFill = rgb{68, 114, 196}

// PDFRenderer draws attendance reports
type PDFRenderer struct {
	logger *slog.Logger
}

// NewPDFRenderer creates a new PDF renderer
func NewPDFRenderer(logger *slog.Logger) *PDFRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFRenderer{logger: logger.With(slog.String("component", "pdf_report"))}
}

// WriteFile renders data and atomically replaces the file at path
func (r *PDFRenderer) WriteFile(ctx context.Context, path string, data *Data) error {
	start := time.Now()
	if err := exporter.WriteFileAtomic(path, func(w io.Writer) error {
		return r.Render(w, data)
	}); err != nil {
		return apperrors.NewStorageError("failed to write PDF report", err).WithContext("path", path)
	}

	r.logger.InfoContext(ctx, "PDF report written",
		slog.String("path", path),
		slog.Int("employees", data.Analysis.Overall.Employees),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Render writes the report for data to w
func (r *PDFRenderer) Render(w io.Writer, data *Data) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(data.Title, true)
	pdf.SetCreator("attendcli", true)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	d := &document{pdf: pdf, tr: tr}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	d.title(data)
	d.kpis(data)
	d.departments(data.Analysis.Departments)
	d.ranking(fmt.Sprintf("Top %d Employees by Attendance", data.Analysis.Options.TopN), data.Analysis.Top)
	d.ranking(fmt.Sprintf("Bottom %d Employees by Attendance", data.Analysis.Options.TopN), data.Analysis.Bottom)
	d.insights(data.Analysis.Insights)

	pdf.AddPage()
	d.statusChart(data.StatusByDepartment)
	d.trendChart(data.MonthlyTrend)
	d.wfhTable(data.WFHTrend)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// document carries the drawing state of one render
type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (d *document) heading(text string) {
	d.ensureSpace(3 * lineHeight)
	d.pdf.Ln(4)
	d.pdf.SetFont("Arial", "B", 13)
	d.pdf.SetTextColor(44, 62, 80)
	d.pdf.CellFormat(0, 8, d.tr(text), "B", 1, "L", false, 0, "")
	d.pdf.Ln(2)
	d.pdf.SetTextColor(0, 0, 0)
}

// ensureSpace starts a new page when fewer than h millimetres remain
func (d *document) ensureSpace(h float64) {
	_, pageH := d.pdf.GetPageSize()
	if d.pdf.GetY()+h > pageH-pageMargin {
		d.pdf.AddPage()
	}
}

func (d *document) title(data *Data) {
	d.pdf.SetFont("Arial", "B", 18)
	d.pdf.CellFormat(0, 10, d.tr(data.Title), "", 1, "L", false, 0, "")
	d.pdf.SetFont("Arial", "", 9)
	d.pdf.SetTextColor(100, 100, 100)
	d.pdf.CellFormat(0, 5, "Generated "+data.GeneratedAt.Format("02 January 2006 15:04"), "", 1, "L", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) kpis(data *Data) {
	d.heading("Summary")
	rows := [][2]string{
		{"Total employees", fmt.Sprint(data.KPIs.TotalEmployees)},
		{"Attendance records", fmt.Sprint(data.KPIs.Records)},
		{"Present rate (office + WFH)", fmt.Sprintf("%.2f%%", data.KPIs.PresentRate)},
		{"Leave rate", fmt.Sprintf("%.2f%%", data.KPIs.LeaveRate)},
		{"Absent rate", fmt.Sprintf("%.2f%%", data.KPIs.AbsentRate)},
		{"Average present percentage", fmt.Sprintf("%.2f%%", data.Analysis.Overall.MeanPresentPercentage)},
		{"Average leave percentage", fmt.Sprintf("%.2f%%", data.Analysis.Overall.MeanLeavePercentage)},
		{"Average absent percentage", fmt.Sprintf("%.2f%%", data.Analysis.Overall.MeanAbsentPercentage)},
	}
	d.pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		d.pdf.CellFormat(80, lineHeight, row[0], "", 0, "L", false, 0, "")
		d.pdf.CellFormat(40, lineHeight, row[1], "", 1, "R", false, 0, "")
	}
}

// table draws a header row and body rows with the given column widths
func (d *document) table(headers []string, widths []float64, rows [][]string) {
	d.ensureSpace(2 * lineHeight)
	d.pdf.SetFont("Arial", "B", 9)
	d.pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	d.pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		d.pdf.CellFormat(widths[i], lineHeight+1, h, "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Arial", "", 9)
	d.pdf.SetTextColor(0, 0, 0)
	for n, row := range rows {
		d.ensureSpace(lineHeight)
		fill := n%2 == 1
		d.pdf.SetFillColor(242, 242, 242)
		for i, cell := range row {
			align := "L"
			if i > 0 && i >= len(row)-2 {
				align = "R"
			}
			d.pdf.CellFormat(widths[i], lineHeight, d.tr(cell), "1", 0, align, fill, 0, "")
		}
		d.pdf.Ln(-1)
	}
	if len(rows) == 0 {
		d.pdf.SetFont("Arial", "I", 9)
		d.pdf.CellFormat(0, lineHeight, "No data", "", 1, "L", false, 0, "")
	}
}

func (d *document) departments(stats []dataprocessing.DepartmentStat) {
	d.heading("Department-wise Average Present Percentage")
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{s.Department, fmt.Sprintf("%.2f", s.MeanPresentPercentage), fmt.Sprint(s.Employees)}
	}
	d.table([]string{"Department", "Avg Present %", "Employee Count"}, []float64{80, 50, 50}, rows)
}

func (d *document) ranking(title string, metrics []domain.EmployeeMetrics) {
	d.heading(title)
	rows := make([][]string, len(metrics))
	for i, m := range metrics {
		rows[i] = []string{
			m.Name.Or(m.EmployeeID), m.Department.OrEmpty(),
			fmt.Sprintf("%.2f", m.PresentPercentage), fmt.Sprint(m.TotalDays),
		}
	}
	d.table([]string{"Name", "Department", "Present %", "Total Days"}, []float64{60, 50, 35, 35}, rows)
}

func (d *document) insights(in dataprocessing.Insights) {
	d.heading("Additional Insights")
	d.pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("1. Employees with 100%% attendance (Present + WFH): %d", in.PerfectAttendance),
		fmt.Sprintf("2. Employees with more than %.0f%% absence: %d", in.AbsenceThreshold, in.HighAbsence),
		fmt.Sprintf("3. Employees with no leaves taken: %d", in.NoLeave),
	}
	for _, l := range lines {
		d.pdf.CellFormat(0, lineHeight, l, "", 1, "L", false, 0, "")
	}
}

func (d *document) legend() {
	d.pdf.SetFont("Arial", "", 8)
	for _, status := range domain.AttendanceStatuses {
		c := statusColors[status]
		d.pdf.SetFillColor(c.r, c.g, c.b)
		x, y := d.pdf.GetXY()
		d.pdf.Rect(x, y+1, 4, 4, "F")
		d.pdf.SetX(x + 5)
		d.pdf.CellFormat(20, lineHeight, status, "", 0, "L", false, 0, "")
	}
	d.pdf.Ln(lineHeight + 2)
}

// statusChart draws one 100% stacked horizontal bar per department
func (d *document) statusChart(breakdowns []dataprocessing.StatusBreakdown) {
	d.heading("Status Share by Department")
	d.legend()

	labelW := 35.0
	for _, b := range breakdowns {
		d.ensureSpace(barHeight + 2)
		x, y := d.pdf.GetXY()
		d.pdf.SetFont("Arial", "", 8)
		d.pdf.CellFormat(labelW, barHeight, d.tr(b.Key), "", 0, "L", false, 0, "")

		offset := x + labelW
		for _, status := range domain.AttendanceStatuses {
			share := b.Shares[status]
			if share <= 0 {
				continue
			}
			w := chartWidth * share / 100
			c := statusColors[status]
			d.pdf.SetFillColor(c.r, c.g, c.b)
			d.pdf.Rect(offset, y, w, barHeight, "F")
			if w >= 10 {
				d.pdf.SetTextColor(255, 255, 255)
				d.pdf.SetXY(offset, y)
				d.pdf.CellFormat(w, barHeight, fmt.Sprintf("%.0f%%", share), "", 0, "C", false, 0, "")
				d.pdf.SetTextColor(0, 0, 0)
			}
			offset += w
		}
		d.pdf.SetXY(x, y+barHeight+2)
	}
}

// trendChart draws stacked monthly status counts as vertical bars
func (d *document) trendChart(points []dataprocessing.TrendPoint) {
	d.heading("Monthly Attendance Trend")
	if len(points) == 0 {
		d.pdf.SetFont("Arial", "I", 9)
		d.pdf.CellFormat(0, lineHeight, "No dated records", "", 1, "L", false, 0, "")
		return
	}
	d.legend()
	d.ensureSpace(trendTall + 2*lineHeight)

	maxTotal := 0
	for _, p := range points {
		total := 0
		for _, n := range p.Counts {
			total += n
		}
		if total > maxTotal {
			maxTotal = total
		}
	}

	x0, y0 := d.pdf.GetXY()
	base := y0 + trendTall
	d.pdf.SetDrawColor(160, 160, 160)
	d.pdf.Line(x0, base, x0+chartWidth+20, base)

	slot := (chartWidth + 20) / float64(len(points))
	barW := slot * 0.6
	d.pdf.SetFont("Arial", "", 7)
	for i, p := range points {
		x := x0 + float64(i)*slot + (slot-barW)/2
		top := base
		for _, status := range domain.AttendanceStatuses {
			n := p.Counts[status]
			if n == 0 {
				continue
			}
			h := trendTall * float64(n) / float64(maxTotal)
			c := statusColors[status]
			d.pdf.SetFillColor(c.r, c.g, c.b)
			d.pdf.Rect(x, top-h, barW, h, "F")
			top -= h
		}
		d.pdf.SetXY(x0+float64(i)*slot, base+1)
		d.pdf.CellFormat(slot, 4, p.Period, "", 0, "C", false, 0, "")
	}
	d.pdf.SetXY(x0, base+lineHeight)
}

func (d *document) wfhTable(points []dataprocessing.PeriodCount) {
	d.heading("Work From Home Days per Month")
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{p.Period, fmt.Sprint(p.Count)}
	}
	d.table([]string{"Month", "WFH Days"}, []float64{50, 40}, rows)
}
