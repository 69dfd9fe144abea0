// Package version exposes build metadata for the timers binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a human-friendly version string that surfaces build metadata.
// Binaries installed with `go install` have no ldflags, so the module version
// and VCS revision recorded by the toolchain are used instead.
func Info() string {
	version, commit, date := Version, Commit, Date
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			version, commit, date = fromBuildInfo(info, version, commit, date)
		}
	}
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func fromBuildInfo(info *debug.BuildInfo, version, commit, date string) (string, string, string) {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) > 12 {
				commit = setting.Value[:12]
			} else if setting.Value != "" {
				commit = setting.Value
			}
		case "vcs.time":
			if setting.Value != "" {
				date = setting.Value
			}
		}
	}
	return version, commit, date
}
