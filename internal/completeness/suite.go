// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package completeness

import (
	"fmt"
	"sort"

	"github.com/outboundlabs/imacs/internal/specmodel"
)

// mergeThreshold is the input-variable-set overlap ratio at or above which
// two specs are flagged as a merge opportunity.
const mergeThreshold = 0.6

// NamedSpec pairs a spec with the ID it was loaded under (a directory's
// file stem, typically, which need not equal spec.ID).
type NamedSpec struct {
	ID   string
	Spec *specmodel.Spec
}

// Collision records a variable name used with incompatible declarations
// across specs.
type Collision struct {
	VariableName string
	Occurrences  []VariableOccurrence
}

type VariableOccurrence struct {
	SpecID   string
	Variable specmodel.Variable
}

// Chain is a detected producer/consumer relationship: spec A's output can
// feed spec B's input of the same name and a compatible type.
type Chain struct {
	SpecA, SpecB string
	OutputName   string
}

// MergeOpportunity flags two specs whose input sets overlap heavily enough
// that combining them into one spec may be worth considering.
type MergeOpportunity struct {
	SpecA, SpecB string
	OverlapRatio float64
}

// SuiteGap is one spec's own uncovered input combination, prefixed with that
// spec's ID (see findSuiteGaps). Combinations that are uncovered only across
// the union of several specs' input spaces are not computed.
type SuiteGap struct {
	Expression string
}

// SpecResult is one spec's individual analysis result within a suite run.
type SpecResult struct {
	SpecID string
	Report Report
	Passed bool
}

// SuiteResult is the result of analyzing a group of specs together.
type SuiteResult struct {
	Individual  []SpecResult
	Collisions  []Collision
	Chains      []Chain
	MergeOpps   []MergeOpportunity
	SuiteGaps   []SuiteGap
	Suggestions []Suggestion
}

// AnalyzeSuite analyzes each spec individually, then runs cross-spec
// collision, chain, merge-opportunity, and suite-gap detection.
func AnalyzeSuite(specs []NamedSpec, full bool) SuiteResult {
	var result SuiteResult
	for _, ns := range specs {
		report := Analyze(ns.Spec, full)
		result.Individual = append(result.Individual, SpecResult{
			SpecID: ns.ID, Report: report, Passed: report.IsComplete,
		})
	}

	result.Collisions = findCollisions(specs)
	result.Chains = findChains(specs)
	result.MergeOpps = findMergeOpportunities(specs)
	result.SuiteGaps = findSuiteGaps(specs)
	result.Suggestions = suggestFixes(result)
	return result
}

// findCollisions groups every declared variable (input or output) by name
// across specs and reports any name whose declarations disagree on type or
// enum value set.
func findCollisions(specs []NamedSpec) []Collision {
	type occ struct {
		specID string
		v      specmodel.Variable
	}
	byName := map[string][]occ{}
	for _, ns := range specs {
		all := append(append([]specmodel.Variable(nil), ns.Spec.Inputs...), ns.Spec.Outputs...)
		for _, v := range all {
			byName[v.Name] = append(byName[v.Name], occ{ns.ID, v})
		}
	}

	var names []string
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var collisions []Collision
	for _, name := range names {
		occs := byName[name]
		if len(occs) < 2 {
			continue
		}
		conflicting := false
		for i := 1; i < len(occs); i++ {
			if occs[i].v.Type != occs[0].v.Type || !sameValues(occs[i].v.Values, occs[0].v.Values) {
				conflicting = true
				break
			}
		}
		if !conflicting {
			continue
		}
		var occurrences []VariableOccurrence
		for _, o := range occs {
			occurrences = append(occurrences, VariableOccurrence{SpecID: o.specID, Variable: o.v})
		}
		collisions = append(collisions, Collision{VariableName: name, Occurrences: occurrences})
	}
	return collisions
}

func sameValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// findChains detects, for every spec pair, an output of A whose name and
// type matches an input of B.
func findChains(specs []NamedSpec) []Chain {
	var chains []Chain
	for _, a := range specs {
		for _, b := range specs {
			if a.ID == b.ID {
				continue
			}
			for _, out := range a.Spec.Outputs {
				for _, in := range b.Spec.Inputs {
					if out.Name == in.Name && out.Type == in.Type {
						chains = append(chains, Chain{SpecA: a.ID, SpecB: b.ID, OutputName: out.Name})
					}
				}
			}
		}
	}
	return chains
}

// findMergeOpportunities flags spec pairs whose input-name sets overlap by
// at least mergeThreshold, computed as intersection size over the smaller
// of the two sets.
func findMergeOpportunities(specs []NamedSpec) []MergeOpportunity {
	var opps []MergeOpportunity
	for i := 0; i < len(specs); i++ {
		for j := i + 1; j < len(specs); j++ {
			a, b := specs[i], specs[j]
			setA := inputNameSet(a.Spec)
			setB := inputNameSet(b.Spec)
			if len(setA) == 0 || len(setB) == 0 {
				continue
			}
			shared := 0
			for name := range setA {
				if setB[name] {
					shared++
				}
			}
			smaller := len(setA)
			if len(setB) < smaller {
				smaller = len(setB)
			}
			ratio := float64(shared) / float64(smaller)
			if ratio >= mergeThreshold {
				opps = append(opps, MergeOpportunity{SpecA: a.ID, SpecB: b.ID, OverlapRatio: ratio})
			}
		}
	}
	return opps
}

func inputNameSet(s *specmodel.Spec) map[string]bool {
	set := make(map[string]bool, len(s.Inputs))
	for _, v := range s.Inputs {
		set[v.Name] = true
	}
	return set
}

// findSuiteGaps reports, per spec whose own rules don't fully cover its
// declared input space, the spec's own missing cases — the suite-level view
// of the same per-spec coverage gap, surfaced here so a directory-wide
// report can list every spec's holes in one place without re-deriving them.
func findSuiteGaps(specs []NamedSpec) []SuiteGap {
	var gaps []SuiteGap
	for _, ns := range specs {
		report := Analyze(ns.Spec, false)
		for _, missing := range report.MissingCases {
			gaps = append(gaps, SuiteGap{Expression: fmt.Sprintf("%s: %s", ns.ID, missing)})
		}
	}
	return gaps
}
