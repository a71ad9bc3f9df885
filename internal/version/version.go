// Package version holds build metadata stamped via -ldflags.
package version

var (
	// Version is the release version.
	Version = "0.1.0"

	// BuildTime is when the binary was built, in UTC.
	BuildTime = "unknown"

	// GitCommit is the short commit hash of the build.
	GitCommit = "unknown"
)

// String returns a single-line version summary for logs and CLIs.
func String() string {
	return Version + " (" + GitCommit + ", " + BuildTime + ")"
}
