// Package version holds build information for PlantMatch binaries. The
// variables are injected at build time via ldflags, e.g.
//
//	-X github.com/HerbHall/plantmatch/internal/version.Version=1.2.0
package version

import (
	"fmt"
	"runtime"
)

// Name is the product name reported by the CLI, health endpoint and MCP
// server.
const Name = "PlantMatch"

// Header is the response header carrying Short().
const Header = "X-PlantMatch-Version"

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns a formatted version string suitable for the version command.
func Info() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s)",
		Name, Version, GitCommit, BuildDate, runtime.Version())
}

// Short returns just the version string (e.g., "0.1.0" or "dev").
func Short() string {
	return Version
}

// Map returns version info for JSON serialization.
func Map() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
}
