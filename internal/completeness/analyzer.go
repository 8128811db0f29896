// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package completeness

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/outboundlabs/imacs/internal/boolcover"
	"github.com/outboundlabs/imacs/internal/minimize"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

// maxFullPredicates is the combined predicate-space size above which a full
// exhaustive complement/minterm count is skipped in favor of a pairwise
// overlap-only pass (the analysis_mode fallback).
const maxFullPredicates = 64

// AnalysisMode records whether a full exhaustive analysis ran or the
// analyzer fell back to cheaper incremental pairwise checks.
type AnalysisMode string

const (
	ModeFull        AnalysisMode = "full"
	ModeIncremental AnalysisMode = "incremental"
)

// Overlap is a non-empty intersection found between two rules' regions.
type Overlap struct {
	RuleA         string
	RuleB         string
	Expression    string
	Contradiction bool // same priority, different outputs — an error
	Duplicate     bool // same priority, identical outputs — a warning
}

// TypeMismatch flags a condition comparing a variable to a literal of an
// incompatible declared type.
type TypeMismatch struct {
	RuleID   string
	Variable string
	Detail   string
}

// Report is the result of analyzing a single spec.
type Report struct {
	SpecID          string
	IsComplete      bool
	Mode            AnalysisMode
	Warning         string
	TotalPredicates int
	CoverageRatio   float64
	MissingCases    []string
	Overlaps        []Overlap
	DeadRules       []string
	TautologyRules  []string
	TypeMismatches  []TypeMismatch
}

// ruleRegion is the per-rule cube set plus evaluation-order metadata needed
// for dead-rule detection.
type ruleRegion struct {
	rule  specmodel.Rule
	cubes []boolcover.Cube
}

// Analyze runs the single-spec completeness analysis described by the
// predicate-alphabet lifting: enumerate predicates, encode each rule as a
// cube set, then report coverage, overlaps, dead rules, tautologies, and
// type mismatches. full forces exhaustive coverage computation even when
// the predicate space is large; otherwise maxFullPredicates gates it.
func Analyze(spec *specmodel.Spec, full bool) Report {
	// Two passes are required: the alphabet must be fully populated across
	// every rule before any cube is built, or rules processed earlier would
	// be encoded at a narrower width than rules that introduce new
	// predicates later, leaving cubes of mismatched dimension in one cover.
	alphabet := NewAlphabet()
	clauseSets := make([]ruleClauses, len(spec.Rules))
	for i, rule := range spec.Rules {
		clauseSets[i] = ExtractRuleClauses(rule, alphabet)
	}

	regions := make([]ruleRegion, len(spec.Rules))
	for i, rule := range spec.Rules {
		regions[i] = ruleRegion{rule: rule, cubes: EncodeCube(clauseSets[i], alphabet)}
	}

	report := Report{SpecID: spec.ID, TotalPredicates: alphabet.Len(), IsComplete: true}

	report.TypeMismatches = checkTypeMismatches(spec, regions)
	if len(report.TypeMismatches) > 0 {
		report.IsComplete = false
	}

	report.DeadRules = findDeadRules(regions)
	if len(report.DeadRules) > 0 {
		report.IsComplete = false
	}

	report.TautologyRules = findTautologyRules(regions)

	report.Overlaps = findOverlaps(regions, alphabet)
	for _, ov := range report.Overlaps {
		if ov.Contradiction {
			report.IsComplete = false
		}
	}

	exhaustive := full || alphabet.Len() <= maxFullPredicates
	if !exhaustive {
		report.Mode = ModeIncremental
		report.Warning = fmt.Sprintf(
			"predicate space (%d variables) exceeds the exhaustive-analysis threshold; coverage and missing-case detection were skipped, pairwise overlap analysis still ran",
			alphabet.Len(),
		)
		return report
	}
	report.Mode = ModeFull

	unionCover := boolcover.NewCover(alphabet.Len(), 1)
	for _, r := range regions {
		for _, c := range r.cubes {
			unionCover.Add(c)
		}
	}

	missing := unionCover.Complement()
	report.CoverageRatio = coverageRatio(alphabet.Len(), missing)
	if !missing.IsEmpty() {
		report.IsComplete = false
		dcSet := boolcover.NewCover(alphabet.Len(), 1)
		minimized := minimize.Espresso(missing, dcSet)
		for _, cube := range minimized.Cubes() {
			report.MissingCases = append(report.MissingCases, DescribeCube(cube, alphabet))
		}
	}

	return report
}

// coverageRatio computes covered/total minterm counts from the complement
// cover, which Cover.Complement's recursive Shannon-expansion construction
// guarantees is pairwise disjoint — so summing 2^(don't-cares) per cube
// gives an exact uncovered count without needing inclusion-exclusion.
func coverageRatio(numPredicates int, complement boolcover.Cover) float64 {
	if numPredicates == 0 {
		if complement.IsEmpty() {
			return 1.0
		}
		return 0.0
	}
	if numPredicates >= bits.UintSize {
		return -1 // too large to represent exactly; caller treats this as unknown
	}
	total := uint64(1) << uint(numPredicates)
	var uncovered uint64
	for _, cube := range complement.Cubes() {
		dontCares := 0
		for i := 0; i < cube.NumInputs(); i++ {
			if cube.Input(i) == boolcover.DontCare {
				dontCares++
			}
		}
		uncovered += uint64(1) << uint(dontCares)
	}
	if uncovered > total {
		uncovered = total
	}
	return float64(total-uncovered) / float64(total)
}

// findOverlaps checks every rule pair's clause cubes pairwise for non-empty
// intersection, classifying equal-priority overlaps as contradictions
// (different output) or duplicates (identical output).
func findOverlaps(regions []ruleRegion, alphabet *Alphabet) []Overlap {
	var overlaps []Overlap
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			a, b := regions[i], regions[j]
			var intersections []boolcover.Cube
			for _, ca := range a.cubes {
				for _, cb := range b.cubes {
					if inter, ok := ca.Intersect(cb); ok && inter.HasActiveOutput() {
						intersections = append(intersections, inter)
					}
				}
			}
			if len(intersections) == 0 {
				continue
			}
			cov := boolcover.NewCover(intersections[0].NumInputs(), 1)
			for _, c := range intersections {
				cov.Add(c)
			}
			cov.RemoveRedundant()

			var exprs []string
			for _, c := range cov.Cubes() {
				exprs = append(exprs, DescribeCube(c, alphabet))
			}
			overlap := Overlap{RuleA: a.rule.ID, RuleB: b.rule.ID, Expression: joinOr(exprs)}
			if a.rule.Priority == b.rule.Priority {
				if outputsEqual(a.rule.Then, b.rule.Then) {
					overlap.Duplicate = true
				} else {
					overlap.Contradiction = true
				}
			}
			overlaps = append(overlaps, overlap)
		}
	}
	return overlaps
}

// findDeadRules orders rules by evaluation priority (higher Priority value
// fires first; ties keep declaration order) and flags a rule as dead when
// its full region is already contained in the union of every
// strictly-earlier rule's region — first-match-wins means it can never fire.
func findDeadRules(regions []ruleRegion) []string {
	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return regions[order[i]].rule.Priority > regions[order[j]].rule.Priority
	})

	var dead []string
	var seenCubes []boolcover.Cube
	for _, idx := range order {
		r := regions[idx]
		if len(seenCubes) > 0 && regionContained(r.cubes, seenCubes) {
			dead = append(dead, r.rule.ID)
		}
		seenCubes = append(seenCubes, r.cubes...)
	}
	return dead
}

// regionContained reports whether every cube of target is contained in the
// union represented by covering.
func regionContained(target, covering []boolcover.Cube) bool {
	cov := boolcover.CoverFromCubes(append([]boolcover.Cube(nil), covering...), safeNumInputs(covering), 1)
	for _, t := range target {
		if !cov.ContainsCube(t) {
			return false
		}
	}
	return true
}

func safeNumInputs(cubes []boolcover.Cube) int {
	if len(cubes) == 0 {
		return 0
	}
	return cubes[0].NumInputs()
}

// findTautologyRules flags rules whose full OR-of-clauses region is the
// entire input space — it always fires regardless of input, shadowing
// every rule below it.
func findTautologyRules(regions []ruleRegion) []string {
	var out []string
	for _, r := range regions {
		if len(r.cubes) == 0 {
			continue
		}
		cov := boolcover.CoverFromCubes(append([]boolcover.Cube(nil), r.cubes...), safeNumInputs(r.cubes), 1)
		if cov.IsTautology() {
			out = append(out, r.rule.ID)
		}
	}
	return out
}

// checkTypeMismatches compares each structured condition's literal kind
// against the variable's declared type.
func checkTypeMismatches(spec *specmodel.Spec, regions []ruleRegion) []TypeMismatch {
	var out []TypeMismatch
	for _, r := range regions {
		for _, cond := range r.rule.Conditions {
			v, ok := spec.Variable(cond.Var)
			if !ok {
				out = append(out, TypeMismatch{
					RuleID: r.rule.ID, Variable: cond.Var,
					Detail: fmt.Sprintf("condition references undeclared variable %q", cond.Var),
				})
				continue
			}
			if mismatch := typeMismatchDetail(v, cond); mismatch != "" {
				out = append(out, TypeMismatch{RuleID: r.rule.ID, Variable: cond.Var, Detail: mismatch})
			}
		}
	}
	return out
}

func typeMismatchDetail(v specmodel.Variable, cond specmodel.Condition) string {
	switch cond.Value.Kind {
	case specmodel.ValBool:
		if v.Type != specmodel.VarBool {
			return fmt.Sprintf("boolean literal compared against %s-typed variable %q", v.Type, v.Name)
		}
	case specmodel.ValInt, specmodel.ValFloat:
		if v.Type != specmodel.VarInt && v.Type != specmodel.VarFloat {
			return fmt.Sprintf("numeric literal compared against %s-typed variable %q", v.Type, v.Name)
		}
	case specmodel.ValString:
		switch v.Type {
		case specmodel.VarString:
			return ""
		case specmodel.VarEnum:
			if len(v.Values) > 0 && !contains(v.Values, cond.Value.Str) {
				return fmt.Sprintf("value %q is not among %q's declared enum values %v", cond.Value.Str, v.Name, v.Values)
			}
		default:
			return fmt.Sprintf("string literal compared against %s-typed variable %q", v.Type, v.Name)
		}
	}
	return ""
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func outputsEqual(a, b specmodel.Output) bool {
	if a.IsMap != b.IsMap {
		return false
	}
	if a.IsMap {
		if len(a.Named) != len(b.Named) {
			return false
		}
		for k, v := range a.Named {
			if bv, ok := b.Named[k]; !ok || v.String() != bv.String() {
				return false
			}
		}
		return true
	}
	return a.Single.String() == b.Single.String()
}

func joinOr(parts []string) string {
	if len(parts) == 0 {
		return "true"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " || " + p
	}
	return out
}
