// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_DefaultsWithoutLdflags(t *testing.T) {
	info := Get()
	assert.Equal(t, "imacs", info.Name)
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.GitRevision)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.GoOS)
	assert.Equal(t, runtime.GOARCH, info.GoArch)
}

func TestGet_ReflectsLdflagsOverrides(t *testing.T) {
	origVersion, origRev := Version, GitRevision
	defer func() { Version, GitRevision = origVersion, origRev }()

	Version = "1.2.3"
	GitRevision = "abc1234"

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc1234", info.GitRevision)
}
