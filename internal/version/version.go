// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the imacs CLI. Version
// and GitRevision are overridden at build time via -ldflags; BuildTime
// falls back to "unknown" for `go run`/plain `go build` invocations where
// no ldflags are supplied.
package version

import "runtime"

var (
	Version     = "dev"
	GitRevision = "unknown"
	BuildTime   = "unknown"
)

// Info is the version/build information returned by Get.
type Info struct {
	Name        string
	Version     string
	GitRevision string
	BuildTime   string
	GoVersion   string
	GoOS        string
	GoArch      string
}

// Get returns the current build's version information.
func Get() Info {
	return Info{
		Name:        "imacs",
		Version:     Version,
		GitRevision: GitRevision,
		BuildTime:   BuildTime,
		GoVersion:   runtime.Version(),
		GoOS:        runtime.GOOS,
		GoArch:      runtime.GOARCH,
	}
}
