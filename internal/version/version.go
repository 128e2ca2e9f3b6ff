// Package version provides version information for the binary.
// Version, Commit and BuildTime are set at build time with -ldflags "-X ...".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"
	Commit    = ""
	BuildTime = "unknown"
)

// String returns the formatted version information.
func String() string {
	return fmt.Sprintf("promptrelay version %s (commit %s, built %s, %s)", Version, revision(), BuildTime, runtime.Version())
}

// revision prefers the -ldflags commit, then the VCS stamp embedded by go build.
func revision() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "none"
}
