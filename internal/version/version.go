// Package version reports the cssval build version.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is set at build time via ldflags, e.g. "v0.3.0"
	Version = "dev"
	// GitCommit is set at build time via ldflags
	GitCommit = "unknown"
)

// readBuildInfo is swapped in tests
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, else the module version from
// the build info, else "dev"
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

// GetFullVersion returns the version with the commit, when known
func GetFullVersion() string {
	v := GetVersion()
	if GitCommit == "unknown" || GitCommit == "" {
		return v
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (commit: %s)", v, commit)
}
