// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package minimize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outboundlabs/imacs/internal/boolcover"
)

func makeCube(t *testing.T, inputStr string) boolcover.Cube {
	t.Helper()
	c, err := boolcover.ParseCube(inputStr, "1")
	require.NoError(t, err)
	return c
}

func TestEspressoSimple(t *testing.T) {
	// Function: AB' + A'B + AB = A + B
	onSet := boolcover.NewCover(2, 1)
	onSet.Add(makeCube(t, "10"))
	onSet.Add(makeCube(t, "01"))
	onSet.Add(makeCube(t, "11"))

	dcSet := boolcover.NewCover(2, 1)

	result := Espresso(onSet, dcSet)

	assert.LessOrEqual(t, result.Len(), 2)
}

func TestEspressoWithDontCares(t *testing.T) {
	onSet := boolcover.NewCover(2, 1)
	onSet.Add(makeCube(t, "00"))
	onSet.Add(makeCube(t, "01"))
	onSet.Add(makeCube(t, "10"))

	dcSet := boolcover.NewCover(2, 1)
	dcSet.Add(makeCube(t, "11"))

	result := Espresso(onSet, dcSet)

	assert.LessOrEqual(t, result.Len(), 2)
}

func TestEspressoExpand(t *testing.T) {
	onSet := boolcover.NewCover(3, 1)
	onSet.Add(makeCube(t, "100"))
	onSet.Add(makeCube(t, "101"))
	onSet.Add(makeCube(t, "110"))
	onSet.Add(makeCube(t, "111"))

	dcSet := boolcover.NewCover(3, 1)

	result := Espresso(onSet, dcSet)

	require.Equal(t, 1, result.Len())
	cube, ok := result.Get(0)
	require.True(t, ok)
	assert.Equal(t, boolcover.One, cube.Input(0))
	assert.Equal(t, boolcover.DontCare, cube.Input(1))
	assert.Equal(t, boolcover.DontCare, cube.Input(2))
}

func TestEspressoIrredundant(t *testing.T) {
	onSet := boolcover.NewCover(2, 1)
	onSet.Add(makeCube(t, "1-")) // covers 10, 11
	onSet.Add(makeCube(t, "10")) // redundant

	dcSet := boolcover.NewCover(2, 1)

	result := Espresso(onSet, dcSet)

	assert.Equal(t, 1, result.Len())
}

func TestEspressoSevenSegmentA(t *testing.T) {
	// Seven-segment display, segment A. ON: 0, 2, 3, 5, 6, 7, 8, 9.
	onSet := boolcover.NewCover(4, 1)
	onSet.Add(makeCube(t, "0000"))
	onSet.Add(makeCube(t, "0010"))
	onSet.Add(makeCube(t, "0011"))
	onSet.Add(makeCube(t, "0101"))
	onSet.Add(makeCube(t, "0110"))
	onSet.Add(makeCube(t, "0111"))
	onSet.Add(makeCube(t, "1000"))
	onSet.Add(makeCube(t, "1001"))

	// DC: 10-15 (invalid BCD).
	dcSet := boolcover.NewCover(4, 1)
	for i := 10; i < 16; i++ {
		dcSet.Add(makeCube(t, fmt.Sprintf("%04b", i)))
	}

	result := Espresso(onSet, dcSet)

	assert.Less(t, result.Len(), 8)
}

func TestExactMinimizeSimple(t *testing.T) {
	onSet := boolcover.NewCover(2, 1)
	onSet.Add(makeCube(t, "10"))
	onSet.Add(makeCube(t, "01"))
	onSet.Add(makeCube(t, "11"))

	dcSet := boolcover.NewCover(2, 1)

	result := ExactMinimize(onSet, dcSet)

	assert.LessOrEqual(t, result.Len(), 2)
	for _, uc := range onSet.Cubes() {
		assert.True(t, result.ContainsCube(uc))
	}
}

func TestSimplify(t *testing.T) {
	cover := boolcover.NewCover(2, 1)
	cover.Add(makeCube(t, "1-"))
	cover.Add(makeCube(t, "10"))

	Simplify(&cover)

	assert.Equal(t, 1, cover.Len())
}
