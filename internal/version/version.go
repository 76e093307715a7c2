// Package version holds the changelog-check build information.
// It has no dependencies so any package can import it.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// Info returns the build information as "label: value" lines.
func Info() []string {
	header := fmt.Sprintf("changelog-check %s", Version)
	if IsDevBuild() {
		header += " (development build)"
	}
	return []string{
		header,
		fmt.Sprintf("commit: %s", Commit),
		fmt.Sprintf("built: %s", BuildDate),
		fmt.Sprintf("go: %s", runtime.Version()),
		fmt.Sprintf("platform: %s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
