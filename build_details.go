package schemadiff

import (
	"fmt"
	"runtime"
)

var (
	// version is set via ldflags during build by GoReleaser
	// For development builds, this will show "dev"
	version = "dev"

	// commit is the short git hash the binary was built from
	commit = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'
func Commit() string {
	return commit
}

// UserAgent returns the User-Agent string to use
func UserAgent() string {
	return fmt.Sprintf("schemadiff/%s", version)
}

// BuildInfo returns a multi-line description of the build, used by `schemadiff version`.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nGo Version: %s", version, commit, runtime.Version())
}
