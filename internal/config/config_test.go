package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "default configuration with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "data/Employee_Attendance.csv", cfg.Paths.AttendanceRaw)
				assert.Equal(t, 5, cfg.Analysis.MinDays)
				assert.Equal(t, 5, cfg.Analysis.TopN)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"ATTEND_SERVER_PORT":         "9090",
				"ATTEND_ANALYSIS_MIN_DAYS":   "10",
				"ATTEND_LOGGING_LEVEL":       "debug",
				"ATTEND_PATHS_MASTER_CLEAN":  "out/master.xlsx",
				"ATTEND_SERVER_READ_TIMEOUT": "5s",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Analysis.MinDays)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "out/master.xlsx", cfg.Paths.MasterClean)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "file overrides defaults and env overrides file",
			file: "server:\n  port: 7070\nanalysis:\n  top_n: 3\n  min_days: 2\n",
			env: map[string]string{
				"ATTEND_ANALYSIS_MIN_DAYS": "4",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, 3, cfg.Analysis.TopN)
				assert.Equal(t, 4, cfg.Analysis.MinDays)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name:    "invalid port is rejected",
			env:     map[string]string{"ATTEND_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "invalid log output is rejected",
			env:     map[string]string{"ATTEND_LOGGING_OUTPUT": "syslog"},
			wantErr: true,
		},
		{
			name:    "malformed yaml fails",
			file:    "server: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.file != "" {
				configPath = filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.file), 0644))
			}
			t.Setenv("ATTEND_CONFIG", configPath)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.validate())
	assert.Equal(t, "Employee_Attendance_Clean.csv", cfg.Paths.AttendanceClean)
	assert.Equal(t, "Employees_Master_Clean.xlsx", cfg.Paths.MasterClean)
	assert.Equal(t, "Employee_Attendance_Analysis_Report.xlsx", cfg.Paths.AnalysisReport)
	assert.Equal(t, 20.0, cfg.Analysis.AbsenceThreshold)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }, wantErr: true},
		{name: "no origins", mutate: func(c *Config) { c.Security.AllowedOrigins = nil }, wantErr: true},
		{name: "missing raw attendance path", mutate: func(c *Config) { c.Paths.AttendanceRaw = "" }, wantErr: true},
		{name: "top n below one", mutate: func(c *Config) { c.Analysis.TopN = 0 }, wantErr: true},
		{name: "threshold above 100", mutate: func(c *Config) { c.Analysis.AbsenceThreshold = 101 }, wantErr: true},
		{name: "unknown trace exporter", mutate: func(c *Config) { c.Telemetry.TracesExporter = "jaeger" }, wantErr: true},
		{
			name: "empty format defaults to json",
			mutate: func(c *Config) {
				c.Logging.Format = ""
				c.Logging.FilePath = ""
			},
		},
		{name: "unknown log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "json", cfg.Logging.Format)
			assert.NotEmpty(t, cfg.Logging.FilePath)
		})
	}
}

func TestGetPaths(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Paths.BaseDir = base
	cfg.Paths.PDFReport = filepath.Join(base, "abs", "report.pdf")

	paths, err := cfg.GetPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data", "Employee_Attendance.csv"), paths.AttendanceRaw)
	assert.Equal(t, filepath.Join(base, "Employee_Attendance_Clean.csv"), paths.AttendanceClean)
	assert.Equal(t, filepath.Join(base, "abs", "report.pdf"), paths.PDFReport)

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.LogsDir)
	assert.DirExists(t, filepath.Join(base, "abs"))
	paths.LogPathResolution(nil)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}
