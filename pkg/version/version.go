// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

// Build metadata. Overridden at link time, e.g.
// -X github.com/Sumatoshi-tech/importcheck/pkg/version.Version=v1.2.0.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolved returns Version, falling back to the module version recorded by
// `go install` when no ldflags were supplied.
func Resolved() string {
	if Version != "dev" {
		return Version
	}

	info, ok := debug.ReadBuildInfo()
	if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

// String formats the metadata for the version command.
func String() string {
	return fmt.Sprintf("importcheck %s (commit: %s, built: %s)", Resolved(), Commit, Date)
}
