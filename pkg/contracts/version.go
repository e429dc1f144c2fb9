// Package contracts holds the versioned contracts shared by the attendance
// commands and the dashboard API.
package contracts

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const (
	// Version of the attendance tools
	Version = "1.2.0"

	// DataFormatVersion identifies the cleaned table layout
	DataFormatVersion = "v1"

	// APIVersion identifies the dashboard HTTP API
	APIVersion = "v1"
)

// Set with -ldflags "-X attendcli/pkg/contracts.BuildTime=... -X attendcli/pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is served by GET /api/version
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	DataFormat   string `json:"data_format"`
	APIVersion   string `json:"api_version"`
}

// GetVersionInfo reports the build. Without ldflags the VCS stamp the Go
// toolchain embeds is used instead.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		DataFormat:   DataFormatVersion,
		APIVersion:   APIVersion,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "unknown":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "unknown":
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// GetVersionString returns "attendcli v<version>"
func GetVersionString() string {
	return fmt.Sprintf("attendcli v%s", Version)
}

// GetFullVersionString adds build details to GetVersionString
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("%s (api %s, data %s, commit %s, built %s, %s %s/%s)",
		GetVersionString(), info.APIVersion, info.DataFormat, info.GitCommit, info.BuildTime,
		info.GoVersion, info.OS, info.Architecture)
}
