package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"attendcli/internal/dataprocessing"
	apierrors "attendcli/internal/errors"
	"attendcli/internal/services"
)

// AttendanceService is the part of services.AttendanceService the handler uses
type AttendanceService interface {
	Reload(ctx context.Context) error
	Summary(ctx context.Context) (*services.Summary, error)
	Departments(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.StatusBreakdown, error)
	Locations(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.StatusBreakdown, error)
	Weekdays(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.StatusBreakdown, error)
	DailyTrend(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.TrendPoint, error)
	MonthlyTrend(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.TrendPoint, error)
	WFHTrend(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.PeriodCount, error)
	Distribution(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.BoxStats, error)
	Employees(ctx context.Context, f dataprocessing.Filter) ([]dataprocessing.EmployeeStat, error)
	ExportEmployees(ctx context.Context, f dataprocessing.Filter, format string, w io.Writer) error
	Drilldown(ctx context.Context, name string, f dataprocessing.Filter) (*dataprocessing.Drilldown, error)
	Rankings(ctx context.Context, n, minDays int) (*services.Rankings, error)
}

// AttendanceHandler serves the dashboard views
type AttendanceHandler struct {
	service      AttendanceService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(service AttendanceService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AttendanceHandler {
	return &AttendanceHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "attendance_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the attendance routes
func (h *AttendanceHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/summary", h.GetSummary)
	r.Post("/reload", h.Reload)
	r.Get("/rankings", h.GetRankings)

	r.Group(func(r chi.Router) {
		r.Use(h.FilterCtx)

		r.Get("/departments", filtered(h, "departments", h.service.Departments))
		r.Get("/departments/distribution", filtered(h, "distribution", h.service.Distribution))
		r.Get("/locations", filtered(h, "locations", h.service.Locations))
		r.Get("/weekdays", filtered(h, "weekdays", h.service.Weekdays))
		r.Get("/trends/daily", filtered(h, "daily trend", h.service.DailyTrend))
		r.Get("/trends/monthly", filtered(h, "monthly trend", h.service.MonthlyTrend))
		r.Get("/trends/wfh", filtered(h, "wfh trend", h.service.WFHTrend))
		r.Get("/employees", filtered(h, "employees", h.service.Employees))
		r.Get("/employees/export.csv", h.Export(services.FormatCSV))
		r.Get("/employees/export.xlsx", h.Export(services.FormatXLSX))
		r.Get("/employees/{name}/drilldown", h.GetDrilldown)
	})

	return r
}

type filterCtxKey struct{}

// FilterCtx parses the filter query parameters into the request context
func (h *AttendanceHandler) FilterCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, err := ParseFilter(r)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), filterCtxKey{}, f)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func filterFrom(ctx context.Context) dataprocessing.Filter {
	f, _ := ctx.Value(filterCtxKey{}).(dataprocessing.Filter)
	return f
}

// ParseFilter reads from, to, department and location query parameters
func ParseFilter(r *http.Request) (dataprocessing.Filter, error) {
	q := r.URL.Query()
	f := dataprocessing.Filter{
		Departments: q["department"],
		Locations:   q["location"],
	}

	var err error
	if f.From, err = parseDate(q.Get("from")); err != nil {
		return f, apierrors.ErrValidation("from", "must be an ISO date (YYYY-MM-DD)")
	}
	if f.To, err = parseDate(q.Get("to")); err != nil {
		return f, apierrors.ErrValidation("to", "must be an ISO date (YYYY-MM-DD)")
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, apierrors.ErrValidation("to", "must not be before from")
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := date.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.ToTime(), nil
}

// success renders the standard response envelope
func success(w http.ResponseWriter, r *http.Request, data interface{}, count int) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
		"count":  count,
	})
}

// filtered adapts a filtered list view of the service into a handler
func filtered[T any](h *AttendanceHandler, name string, view func(context.Context, dataprocessing.Filter) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data, err := view(ctx, filterFrom(ctx))
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to get "+name, slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
			return
		}
		success(w, r, data, len(data))
	}
}

// GetSummary handles GET /api/attendance/summary
func (h *AttendanceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, summary, summary.KPIs.Records)
}

// Reload handles POST /api/attendance/reload
func (h *AttendanceHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Reload(ctx); err != nil {
		h.logger.ErrorContext(ctx, "reload failed", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.logger.InfoContext(ctx, "attendance data reloaded", slog.Int("records", summary.KPIs.Records))
	success(w, r, summary, summary.KPIs.Records)
}

// GetRankings handles GET /api/attendance/rankings?n=&min_days=
func (h *AttendanceHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	minDays, err := intParam(r, "min_days", -1)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rankings, err := h.service.Rankings(r.Context(), n, minDays)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, rankings, len(rankings.Top)+len(rankings.Bottom))
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apierrors.ErrValidation(name, "must be a non-negative integer")
	}
	return v, nil
}

// GetDrilldown handles GET /api/attendance/employees/{name}/drilldown
func (h *AttendanceHandler) GetDrilldown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	if name == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Employee name is required"))
		return
	}

	dd, err := h.service.Drilldown(ctx, name, filterFrom(ctx))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	success(w, r, dd, dd.TotalRecords)
}

// Export handles the employee stats downloads
func (h *AttendanceHandler) Export(format string) http.HandlerFunc {
	contentType := "text/csv; charset=utf-8"
	if format == services.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	filename := "employee_metrics." + format

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Render into memory first so failures can still become problem documents
		var buf bytes.Buffer
		if err := h.service.ExportEmployees(ctx, filterFrom(ctx), format, &buf); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			h.logger.WarnContext(ctx, "export write failed", slog.String("error", err.Error()))
		}
	}
}
