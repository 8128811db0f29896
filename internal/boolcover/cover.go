// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package boolcover

import (
	"sort"
	"strings"
)

// maxComplementDepth caps the recursive Shannon expansion used by
// Complement/IsTautology so a pathological input can't blow the stack;
// past this depth the recursion bails out conservatively.
const maxComplementDepth = 30

// Cover is a Boolean function represented as the OR of its cubes.
type Cover struct {
	cubes      []Cube
	numInputs  int
	numOutputs int
}

// NewCover creates an empty cover.
func NewCover(numInputs, numOutputs int) Cover {
	return Cover{numInputs: numInputs, numOutputs: numOutputs}
}

// CoverFromCubes wraps an existing cube slice as a cover.
func CoverFromCubes(cubes []Cube, numInputs, numOutputs int) Cover {
	return Cover{cubes: cubes, numInputs: numInputs, numOutputs: numOutputs}
}

func (c Cover) Len() int          { return len(c.cubes) }
func (c Cover) IsEmpty() bool     { return len(c.cubes) == 0 }
func (c Cover) NumInputs() int    { return c.numInputs }
func (c Cover) NumOutputs() int   { return c.numOutputs }
func (c Cover) Cubes() []Cube     { return c.cubes }

// Add appends a cube to the cover.
func (c *Cover) Add(cube Cube) { c.cubes = append(c.cubes, cube) }

// Remove deletes the cube at index and returns it.
func (c *Cover) Remove(index int) Cube {
	cube := c.cubes[index]
	c.cubes = append(c.cubes[:index], c.cubes[index+1:]...)
	return cube
}

// Get returns the cube at index, or false if out of range.
func (c Cover) Get(index int) (Cube, bool) {
	if index < 0 || index >= len(c.cubes) {
		return Cube{}, false
	}
	return c.cubes[index], true
}

// Cost sums each cube's literal-count cost over the cover.
func (c Cover) Cost() int {
	total := 0
	for _, cube := range c.cubes {
		total += cube.Cost()
	}
	return total
}

// LiteralCount sums literal counts over the cover.
func (c Cover) LiteralCount() int {
	total := 0
	for _, cube := range c.cubes {
		total += cube.LiteralCount()
	}
	return total
}

// ContainsCube reports whether some cube in the cover covers cube.
func (c Cover) ContainsCube(cube Cube) bool {
	for _, own := range c.cubes {
		if own.Contains(cube) {
			return true
		}
	}
	return false
}

// Covers reports whether c covers every cube of other.
func (c Cover) Covers(other Cover) bool {
	for _, cube := range other.cubes {
		if !c.ContainsCube(cube) {
			return false
		}
	}
	return true
}

// RemoveRedundant drops cubes that are covered by some other cube in the
// same cover.
func (c *Cover) RemoveRedundant() {
	i := 0
	for i < len(c.cubes) {
		redundant := false
		for j := range c.cubes {
			if i != j && c.cubes[j].Contains(c.cubes[i]) {
				redundant = true
				break
			}
		}
		if redundant {
			c.cubes = append(c.cubes[:i], c.cubes[i+1:]...)
		} else {
			i++
		}
	}
}

// Distance1Merge repeatedly merges distance-1 cube pairs until no more
// merges apply, then removes any cubes that became redundant as a result.
func (c *Cover) Distance1Merge() {
	changed := true
	for changed {
		changed = false
		i := 0
		for i < len(c.cubes) {
			merged := false
			for j := i + 1; j < len(c.cubes); j++ {
				if pos, ok := c.cubes[i].CanMerge(c.cubes[j]); ok {
					c.cubes[i] = c.cubes[i].Merge(pos)
					c.cubes = append(c.cubes[:j], c.cubes[j+1:]...)
					merged = true
					changed = true
					break
				}
			}
			if !merged {
				i++
			}
		}
	}
	c.RemoveRedundant()
}

// Union returns the cube-set union of c and other, skipping cubes of
// other already covered by c.
func (c Cover) Union(other Cover) Cover {
	result := Cover{cubes: append([]Cube(nil), c.cubes...), numInputs: c.numInputs, numOutputs: c.numOutputs}
	for _, cube := range other.cubes {
		if !result.ContainsCube(cube) {
			result.Add(cube)
		}
	}
	return result
}

// Intersect returns every pairwise intersection between c's and other's
// cubes that still activates at least one output, with redundancy removed.
func (c Cover) Intersect(other Cover) Cover {
	result := NewCover(c.numInputs, c.numOutputs)
	for _, c1 := range c.cubes {
		for _, c2 := range other.cubes {
			if inter, ok := c1.Intersect(c2); ok && inter.HasActiveOutput() {
				result.Add(inter)
			}
		}
	}
	result.RemoveRedundant()
	return result
}

// Complement computes the De Morgan complement of the cover via
// depth-capped recursive Shannon expansion on the most-binate variable.
func (c Cover) Complement() Cover {
	return c.complementWithDepth(0)
}

func (c Cover) complementWithDepth(depth int) Cover {
	if depth > maxComplementDepth {
		return NewCover(c.numInputs, c.numOutputs)
	}
	if len(c.cubes) == 0 {
		result := NewCover(c.numInputs, c.numOutputs)
		tautology := NewCube(c.numInputs, c.numOutputs)
		for i := 0; i < c.numOutputs; i++ {
			tautology.SetOutput(i, One)
		}
		result.Add(tautology)
		return result
	}
	if c.isTautologyWithDepth(depth) {
		return NewCover(c.numInputs, c.numOutputs)
	}

	splitVar := c.findSplittingVariable()
	cofactorPos := c.Cofactor(splitVar, true)
	cofactorNeg := c.Cofactor(splitVar, false)

	compPos := cofactorPos.complementWithDepth(depth + 1)
	compNeg := cofactorNeg.complementWithDepth(depth + 1)

	result := NewCover(c.numInputs, c.numOutputs)
	for _, cube := range compPos.cubes {
		if cube.Input(splitVar) == DontCare {
			cube = cube.Clone()
			cube.SetInput(splitVar, One)
		}
		result.Add(cube)
	}
	for _, cube := range compNeg.cubes {
		if cube.Input(splitVar) == DontCare {
			cube = cube.Clone()
			cube.SetInput(splitVar, Zero)
		}
		result.Add(cube)
	}
	result.RemoveRedundant()
	return result
}

// IsTautology reports whether the cover covers every possible minterm.
func (c Cover) IsTautology() bool { return c.isTautologyWithDepth(0) }

func (c Cover) isTautologyWithDepth(depth int) bool {
	if depth > maxComplementDepth {
		return false
	}
	for _, cube := range c.cubes {
		if cube.IsTautology() {
			return true
		}
	}
	if len(c.cubes) == 0 {
		return false
	}
	if c.IsUnate() {
		return false
	}
	splitVar := c.findSplittingVariable()
	cofactorPos := c.Cofactor(splitVar, true)
	cofactorNeg := c.Cofactor(splitVar, false)
	return cofactorPos.isTautologyWithDepth(depth+1) && cofactorNeg.isTautologyWithDepth(depth+1)
}

// IsUnate reports whether every variable appears with only one polarity
// across the cover (a necessary condition for "definitely not a
// tautology" unless a cube is already a tautology cube).
func (c Cover) IsUnate() bool {
	for v := 0; v < c.numInputs; v++ {
		hasPos, hasNeg := false, false
		for _, cube := range c.cubes {
			switch cube.Input(v) {
			case One:
				hasPos = true
			case Zero:
				hasNeg = true
			}
		}
		if hasPos && hasNeg {
			return false
		}
	}
	return true
}

// findSplittingVariable picks the most-binate variable (the one whose
// positive/negative split is most balanced) to cofactor on next.
func (c Cover) findSplittingVariable() int {
	bestVar, bestScore, found := 0, 0, false
	for v := 0; v < c.numInputs; v++ {
		posCount, negCount, dcCount := 0, 0, 0
		for _, cube := range c.cubes {
			switch cube.Input(v) {
			case One:
				posCount++
			case Zero:
				negCount++
			default:
				dcCount++
			}
		}
		if dcCount == len(c.cubes) {
			continue
		}
		effPos := posCount + dcCount
		effNeg := negCount + dcCount
		score := effPos
		if effNeg < score {
			score = effNeg
		}
		if score > bestScore || !found {
			bestScore = score
			bestVar = v
			found = true
		}
	}
	return bestVar
}

// Cofactor restricts the cover with respect to variable v being forced to
// positive (true) or negative (false).
func (c Cover) Cofactor(v int, positive bool) Cover {
	result := NewCover(c.numInputs, c.numOutputs)
	for _, cube := range c.cubes {
		var cofactored Cube
		var ok bool
		if positive {
			cofactored, ok = cube.CofactorTrue(v)
		} else {
			cofactored, ok = cube.CofactorFalse(v)
		}
		if ok {
			result.Add(cofactored)
		}
	}
	return result
}

// CubeIntersectsOff reports whether cube intersects any cube of offSet,
// the complement cover representing the function's OFF-set.
func (c Cover) CubeIntersectsOff(cube Cube, offSet Cover) bool {
	for _, offCube := range offSet.cubes {
		if cube.Intersects(offCube) {
			return true
		}
	}
	return false
}

// Clear empties the cover in place.
func (c *Cover) Clear() { c.cubes = nil }

// ExtractSingleOutput projects the cover down to the cubes that activate
// a single given output column, producing a 1-output cover.
func (c Cover) ExtractSingleOutput(output int) Cover {
	result := NewCover(c.numInputs, 1)
	for _, cube := range c.cubes {
		if cube.Output(output) != One {
			continue
		}
		nc := NewCube(c.numInputs, 1)
		for i := 0; i < c.numInputs; i++ {
			nc.SetInput(i, cube.Input(i))
		}
		nc.SetOutput(0, One)
		result.Add(nc)
	}
	return result
}

// SortBySize orders cubes by ascending literal count (fewest first).
func (c *Cover) SortBySize() {
	sort.SliceStable(c.cubes, func(i, j int) bool {
		return c.cubes[i].LiteralCount() < c.cubes[j].LiteralCount()
	})
}

// SortBySizeDesc orders cubes by descending literal count (most first),
// used by the minimizer's REDUCE step.
func (c *Cover) SortBySizeDesc() {
	sort.SliceStable(c.cubes, func(i, j int) bool {
		return c.cubes[i].LiteralCount() > c.cubes[j].LiteralCount()
	})
}

func (c Cover) String() string {
	var b strings.Builder
	for _, cube := range c.cubes {
		b.WriteString(cube.String())
		b.WriteByte('\n')
	}
	return b.String()
}
