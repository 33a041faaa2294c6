package version

import "fmt"

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String returns a single-line version string for the CLI.
func String() string {
	return fmt.Sprintf("textpost %s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
