package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the namespace for every environment override, e.g. ATTEND_SERVER_PORT.
const EnvPrefix = "ATTEND"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration for the dashboard
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" validate:"min=1"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=console stdout file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig names the input and output files of a pipeline run.
// Relative paths are resolved against BaseDir.
type PathsConfig struct {
	BaseDir         string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir         string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogsDir         string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	AttendanceRaw   string `yaml:"attendance_raw" envconfig:"ATTENDANCE_RAW" validate:"required"`
	MasterRaw       string `yaml:"master_raw" envconfig:"MASTER_RAW" validate:"required"`
	AttendanceClean string `yaml:"attendance_clean" envconfig:"ATTENDANCE_CLEAN" validate:"required"`
	MasterClean     string `yaml:"master_clean" envconfig:"MASTER_CLEAN" validate:"required"`
	AnalysisReport  string `yaml:"analysis_report" envconfig:"ANALYSIS_REPORT"`
	PDFReport       string `yaml:"pdf_report" envconfig:"PDF_REPORT"`
}

// AnalysisConfig holds the rollup parameters shared by the analyzer, the report and the dashboard.
type AnalysisConfig struct {
	MinDays          int     `yaml:"min_days" envconfig:"MIN_DAYS" validate:"gte=0"`
	TopN             int     `yaml:"top_n" envconfig:"TOP_N" validate:"gte=1"`
	AbsenceThreshold float64 `yaml:"absence_threshold" envconfig:"ABSENCE_THRESHOLD" validate:"gte=0,lte=100"`
	RecentRecords    int     `yaml:"recent_records" envconfig:"RECENT_RECORDS" validate:"gte=0"`
}

// TelemetryConfig selects the OpenTelemetry exporters
type TelemetryConfig struct {
	ServiceName     string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TracesExporter  string `yaml:"traces_exporter" envconfig:"TRACES_EXPORTER" validate:"omitempty,oneof=stdout none"`
	MetricsExporter string `yaml:"metrics_exporter" envconfig:"METRICS_EXPORTER" validate:"omitempty,oneof=prometheus none"`
}

// Load builds the configuration from defaults, an optional YAML file and
// ATTEND_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at filePath onto cfg.
// Keys absent from the file keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" when none exists
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG"); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:         "data",
			LogsDir:         "logs",
			AttendanceRaw:   "data/Employee_Attendance.csv",
			MasterRaw:       "data/Employees_Master.xlsx",
			AttendanceClean: "Employee_Attendance_Clean.csv",
			MasterClean:     "Employees_Master_Clean.xlsx",
			AnalysisReport:  "Employee_Attendance_Analysis_Report.xlsx",
			PDFReport:       "Employee_Attendance_Report.pdf",
		},
		Analysis: AnalysisConfig{
			MinDays:          5,
			TopN:             5,
			AbsenceThreshold: 20,
			RecentRecords:    30,
		},
		Telemetry: TelemetryConfig{
			ServiceName:     "attendcli",
			TracesExporter:  "none",
			MetricsExporter: "prometheus",
		},
	}
}
