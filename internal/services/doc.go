// Package services implements the business logic behind the attendance dashboard.
// It sits between the HTTP handlers and the dataprocessing package: handlers
// parse requests into filters, services run the rollups against the current
// dataset snapshot and return plain values for rendering.
//
// # Snapshots
//
// AttendanceService holds one immutable *dataprocessing.Dataset at a time.
// Reload reads the cleaned files and swaps the snapshot under a write lock, so
// requests in flight keep working on the snapshot they started with:
//
//	svc := services.NewAttendanceService(paths, cfg.Analysis, logger)
//	if err := svc.Reload(ctx); err != nil {
//	    return err
//	}
//	kpis, err := svc.Summary(ctx)
//
// # Errors
//
// Services return internal/errors AppErrors. A service that has not loaded
// data yet answers with ErrDataNotLoaded, which handlers map to 503.
package services
