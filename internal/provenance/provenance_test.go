// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package provenance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := []byte("// Code generated from spec access (hash deadbeefcafef00d) at 2026-01-01T00:00:00Z. DO NOT EDIT.\npackage access\n")
	h, ok := Parse(src)
	require.True(t, ok)
	assert.Equal(t, "access", h.SpecID)
	assert.Equal(t, "deadbeefcafef00d", h.SpecHash)
	assert.Equal(t, "2026-01-01T00:00:00Z", h.GeneratedAt)
}

func TestParse_NoHeader(t *testing.T) {
	_, ok := Parse([]byte("package access\n"))
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	a := Header{SpecID: "access", SpecHash: "abc"}
	assert.Equal(t, StatusSynced, Compare(a, Header{SpecID: "access", SpecHash: "abc"}))
	assert.Equal(t, StatusMinorDrift, Compare(a, Header{SpecID: "access", SpecHash: "def"}))
	assert.Equal(t, StatusDifferentID, Compare(a, Header{SpecID: "other", SpecHash: "abc"}))
}

func TestIsFresh(t *testing.T) {
	assert.True(t, IsFresh(Header{SpecHash: "abc"}, "abc"))
	assert.False(t, IsFresh(Header{SpecHash: "abc"}, "def"))
}
