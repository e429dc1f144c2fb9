// Package config provides centralized configuration management for the attendance tools.
// It loads configuration from multiple sources, validates it, and resolves every file
// path a pipeline run reads or writes.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML file: $ATTEND_CONFIG, config.yaml or configs/config.yaml
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ATTEND_<SECTION>_<FIELD>:
//
//	ATTEND_SERVER_PORT=8080
//	ATTEND_LOGGING_LEVEL=debug
//	ATTEND_PATHS_ATTENDANCE_RAW=data/Employee_Attendance.csv
//	ATTEND_ANALYSIS_MIN_DAYS=5
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    cfg = config.Default()
//	}
//	paths, err := cfg.GetPaths()
//
// # Testing
//
// Tests use config.Default() to obtain a configuration that needs no
// environment variables or files.
package config
