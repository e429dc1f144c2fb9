package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// HealthService provides health check functionality
type HealthService struct {
	version    string
	dataDir    string
	attendance *AttendanceService
	startTime  time.Time
	logger     *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service reporting on the attendance data
func NewHealthService(version, dataDir string, attendance *AttendanceService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		version:    version,
		dataDir:    dataDir,
		attendance: attendance,
		startTime:  time.Now(),
		logger:     logger.With(slog.String("service", "health")),
	}
}

// ReadinessCheck reports "ready" once attendance data is loaded and the data
// directory is reachable
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"attendance": hs.checkAttendance(),
			"data":       hs.checkDataDir(),
		},
	}

	for name, service := range status.Services {
		if service.Status != "ready" {
			status.Status = "not_ready"
			hs.logger.DebugContext(ctx, "ReadinessCheck: service not ready",
				slog.String("name", name),
				slog.String("message", service.Message))
		}
	}
	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

func (hs *HealthService) checkAttendance() ServiceHealth {
	if hs.attendance == nil {
		return ServiceHealth{Status: "not_ready", Message: "attendance service not configured"}
	}
	loaded, at := hs.attendance.Loaded()
	if !loaded {
		return ServiceHealth{Status: "not_ready", Message: "attendance data not loaded"}
	}
	return ServiceHealth{Status: "ready", Message: "loaded at " + at.Format(time.RFC3339)}
}

func (hs *HealthService) checkDataDir() ServiceHealth {
	if hs.dataDir == "" {
		return ServiceHealth{Status: "ready"}
	}
	info, err := os.Stat(hs.dataDir)
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: fmt.Sprintf("data directory unavailable: %v", err)}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "not_ready", Message: "data path is not a directory: " + hs.dataDir}
	}
	return ServiceHealth{Status: "ready"}
}
