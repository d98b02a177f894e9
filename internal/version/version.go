// Package version provides build-time version information for the classgen CLI.
//
// Overview:
//   - Responsibility: Expose version, commit and build time (set via -ldflags)
//   - Key Types: Info
//   - Concurrency Model: Read-only after init
//   - Error Semantics: None
//   - Performance Notes: Constant-time string formatting
//
// Usage:
//
//	go build -ldflags "-X go.eggybyte.com/classgen/internal/version.Version=v0.2.0" ./cmd/classgen
package version

import (
	"fmt"
	"runtime"
)

// Version is the CLI release version.
var Version = "v0.1.0"

// Commit is the git commit the binary was built from.
var Commit = "unknown"

// BuildTime is the RFC3339 build timestamp.
var BuildTime = "unknown"

// Info is the structured form of the version data, used for JSON output.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version data.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetVersionString returns the one-line version banner.
func GetVersionString() string {
	return fmt.Sprintf("classgen version %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// GetFullVersionInfo returns the banner plus the Go runtime line.
func GetFullVersionInfo() string {
	info := Get()
	return fmt.Sprintf("%s\ngo version %s (%s)", GetVersionString(), info.GoVersion, info.Platform)
}
