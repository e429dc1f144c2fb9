package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths holds the resolved absolute locations of every file a run touches.
// This is the single source of truth for file paths; commands never join paths themselves.
type Paths struct {
	BaseDir string
	DataDir string
	LogsDir string

	AttendanceRaw   string
	MasterRaw       string
	AttendanceClean string
	MasterClean     string
	AnalysisReport  string
	PDFReport       string
}

// GetPaths resolves the configured paths against BaseDir, or against the
// current working directory when BaseDir is empty.
func (c *Config) GetPaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %v", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %v", err)
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	return &Paths{
		BaseDir:         base,
		DataDir:         resolve(c.Paths.DataDir),
		LogsDir:         resolve(c.Paths.LogsDir),
		AttendanceRaw:   resolve(c.Paths.AttendanceRaw),
		MasterRaw:       resolve(c.Paths.MasterRaw),
		AttendanceClean: resolve(c.Paths.AttendanceClean),
		MasterClean:     resolve(c.Paths.MasterClean),
		AnalysisReport:  resolve(c.Paths.AnalysisReport),
		PDFReport:       resolve(c.Paths.PDFReport),
	}, nil
}

// EnsureDirectories creates the parent directory of every output file
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.LogsDir}
	for _, out := range []string{p.AttendanceClean, p.MasterClean, p.AnalysisReport, p.PDFReport} {
		if out != "" {
			dirs = append(dirs, filepath.Dir(out))
		}
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs every resolved path at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("attendance_raw", p.AttendanceRaw),
		slog.String("master_raw", p.MasterRaw),
		slog.String("attendance_clean", p.AttendanceClean),
		slog.String("master_clean", p.MasterClean),
		slog.String("analysis_report", p.AnalysisReport),
		slog.String("pdf_report", p.PDFReport))
}

// FileExists reports whether path exists and is not a directory
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
