// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package boolcover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCube(t *testing.T, in, out string) Cube {
	t.Helper()
	c, err := ParseCube(in, out)
	require.NoError(t, err)
	return c
}

func TestCubeCreation(t *testing.T) {
	cube := mustCube(t, "10-", "1")
	assert.Equal(t, 3, cube.NumInputs())
	assert.Equal(t, 1, cube.NumOutputs())
	assert.Equal(t, One, cube.Input(0))
	assert.Equal(t, Zero, cube.Input(1))
	assert.Equal(t, DontCare, cube.Input(2))
}

func TestCubeMerge(t *testing.T) {
	c1 := mustCube(t, "10", "1")
	c2 := mustCube(t, "11", "1")

	diff, ok := c1.CanMerge(c2)
	require.True(t, ok)
	assert.Equal(t, 1, diff)

	merged := c1.Merge(diff)
	assert.Equal(t, One, merged.Input(0))
	assert.Equal(t, DontCare, merged.Input(1))
}

func TestCubeContains(t *testing.T) {
	c1 := mustCube(t, "1-", "1") // covers 10 and 11
	c2 := mustCube(t, "10", "1")
	c3 := mustCube(t, "01", "1")

	assert.True(t, c1.Contains(c2))
	assert.False(t, c1.Contains(c3))
}

func TestCubeIntersection(t *testing.T) {
	c1 := mustCube(t, "1-", "1")
	c2 := mustCube(t, "-0", "1")

	inter, ok := c1.Intersect(c2)
	require.True(t, ok)
	assert.Equal(t, One, inter.Input(0))
	assert.Equal(t, Zero, inter.Input(1))
}

func TestDisjointCubes(t *testing.T) {
	c1 := mustCube(t, "10", "1")
	c2 := mustCube(t, "01", "1")

	_, ok := c1.Intersect(c2)
	assert.False(t, ok)
}

func TestLiteralCount(t *testing.T) {
	c1 := mustCube(t, "10-1", "1")
	assert.Equal(t, 3, c1.LiteralCount())

	c2 := mustCube(t, "----", "1")
	assert.Equal(t, 0, c2.LiteralCount())
}

func TestCoverCreation(t *testing.T) {
	cover := NewCover(2, 1)
	cover.Add(mustCube(t, "10", "1"))
	cover.Add(mustCube(t, "01", "1"))

	assert.Equal(t, 2, cover.Len())
	assert.Equal(t, 2, cover.NumInputs())
	assert.Equal(t, 1, cover.NumOutputs())
}

func TestCoverDistance1Merge(t *testing.T) {
	cover := NewCover(2, 1)
	cover.Add(mustCube(t, "10", "1"))
	cover.Add(mustCube(t, "11", "1"))

	cover.Distance1Merge()

	require.Equal(t, 1, cover.Len())
	first, ok := cover.Get(0)
	require.True(t, ok)
	assert.Equal(t, One, first.Input(0))
	assert.Equal(t, DontCare, first.Input(1))
}

func TestCoverRemoveRedundant(t *testing.T) {
	cover := NewCover(2, 1)
	cover.Add(mustCube(t, "1-", "1")) // covers 10 and 11
	cover.Add(mustCube(t, "10", "1")) // redundant

	cover.RemoveRedundant()

	assert.Equal(t, 1, cover.Len())
}

func TestCoverCofactor(t *testing.T) {
	cover := NewCover(2, 1)
	cover.Add(mustCube(t, "1-", "1"))
	cover.Add(mustCube(t, "01", "1"))

	cofactor := cover.Cofactor(0, true)
	assert.Equal(t, 1, cofactor.Len()) // only "1-" contributes

	cofactor = cover.Cofactor(0, false)
	assert.Equal(t, 1, cofactor.Len()) // only "01" contributes
}

func TestCoverTautology(t *testing.T) {
	cover := NewCover(2, 1)
	cover.Add(mustCube(t, "--", "1"))
	assert.True(t, cover.IsTautology())

	cover2 := NewCover(2, 1)
	cover2.Add(mustCube(t, "10", "1"))
	assert.False(t, cover2.IsTautology())
}

func TestCoverComplement(t *testing.T) {
	cover := NewCover(2, 1)
	cover.Add(mustCube(t, "10", "1"))
	comp := cover.Complement()
	assert.False(t, comp.IsEmpty())
	// "10" is on-set; the complement's input space must not contain it.
	for _, c := range comp.Cubes() {
		assert.False(t, c.Input(0) == One && c.Input(1) == Zero)
	}
}

func TestCubeComplement(t *testing.T) {
	c := mustCube(t, "10", "1")
	comp := c.Complement()
	require.Len(t, comp, 2)
}
