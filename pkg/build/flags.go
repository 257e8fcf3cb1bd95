// SPDX-License-Identifier: MIT
//
// Package build carries the metadata stamped into the binary at link time:
//
//	go build -ldflags "-X nausea/pkg/build.buildName=nausea \
//	    -X nausea/pkg/build.buildVersion=0.3.0 \
//	    -X nausea/pkg/build.buildCommit=$(git rev-parse --short HEAD) \
//	    -X nausea/pkg/build.buildTime=$(date -u +%FT%TZ)"
//
// Development builds run without ldflags; Initialize then reports the
// missing flag and callers fall back to the defaults below.
package build

import (
	"errors"
	"fmt"
)

const (
	defaultName        = "nausea"
	defaultDescription = "Terminal spectrum, waveform and fountain visualizer for raw PCM streams"
	unknown            = "unknown"
)

type ldFlags struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

// Package-level variables populated by -ldflags.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = &ldFlags{
		Name:        defaultName,
		Description: defaultDescription,
		Time:        unknown,
		Commit:      unknown,
		Version:     unknown,
	}
)

// Initialize validates and copies build information from the ldflags
// variables. It returns an error naming the first missing flag; buildFlags
// keeps its defaults in that case.
func Initialize() error {
	if buildName == "" {
		return errors.New("BuildName is required")
	}
	if buildTime == "" {
		return errors.New("BuildTime is required")
	}
	if buildCommit == "" {
		return errors.New("BuildCommit is required")
	}
	if buildVersion == "" {
		return errors.New("BuildVersion is required")
	}

	buildFlags.Name = buildName
	buildFlags.Time = buildTime
	buildFlags.Commit = buildCommit
	buildFlags.Version = buildVersion

	return nil
}

// GetBuildFlags returns the current build information.
func GetBuildFlags() *ldFlags {
	return buildFlags
}

// String formats the build information for `--version`.
func (f *ldFlags) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", f.Version, f.Commit, f.Time)
}
