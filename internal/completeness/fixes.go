// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package completeness

import "fmt"

// Confidence is how sure a suggested fix is of being correct, gating
// whether ApplyFixes applies it without an explicit override.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// FixKind discriminates the structured operation a Suggestion proposes.
type FixKind string

const (
	FixRenameVariable       FixKind = "rename_variable"
	FixNamespacePrefix      FixKind = "namespace_prefix"
	FixMergeSpecs           FixKind = "merge_specs"
	FixExtractRules         FixKind = "extract_rules"
	FixDefineOrchestrator   FixKind = "define_orchestrator_chain"
	FixAddPriority          FixKind = "add_priority"
	FixDeleteRule           FixKind = "delete_rule"
	FixUpdateExpression     FixKind = "update_expression"
)

// Suggestion is one proposed remediation surfaced by suite analysis.
type Suggestion struct {
	Code        string
	Description string
	Kind        FixKind
	Confidence  Confidence
	// Details carries the kind-specific payload (variable names, spec IDs,
	// rule IDs) as plain strings rather than a typed union: every consumer
	// of a Suggestion (the CLI printer, ApplyFixes) already switches on Kind
	// and reads only the keys valid for that kind, so a map avoids eight
	// near-identical payload structs for data that's rendered as text or
	// fed back into a YAML mutation either way.
	Details map[string]string
}

// suggestFixes derives Suggestions from a completed suite analysis:
// collisions suggest a namespace prefix, merge opportunities
// suggest merging specs, and chains suggest formalizing the relationship as
// an orchestrator.
func suggestFixes(result SuiteResult) []Suggestion {
	var suggestions []Suggestion
	code := 1

	for _, c := range result.Collisions {
		suggestions = append(suggestions, Suggestion{
			Code:        fmt.Sprintf("C%03d", code),
			Description: fmt.Sprintf("variable %q has conflicting declarations across specs", c.VariableName),
			Kind:        FixNamespacePrefix,
			Confidence:  ConfidenceMedium,
			Details:     map[string]string{"variable": c.VariableName},
		})
		code++
	}

	for _, m := range result.MergeOpps {
		suggestions = append(suggestions, Suggestion{
			Code:        fmt.Sprintf("M%03d", code),
			Description: fmt.Sprintf("%s and %s share %.0f%% of their input variables", m.SpecA, m.SpecB, m.OverlapRatio*100),
			Kind:        FixMergeSpecs,
			Confidence:  ConfidenceLow,
			Details:     map[string]string{"spec_a": m.SpecA, "spec_b": m.SpecB},
		})
		code++
	}

	seenChainPairs := map[string]bool{}
	for _, ch := range result.Chains {
		key := ch.SpecA + "->" + ch.SpecB
		if seenChainPairs[key] {
			continue
		}
		seenChainPairs[key] = true
		suggestions = append(suggestions, Suggestion{
			Code:        fmt.Sprintf("R%03d", code),
			Description: fmt.Sprintf("%s's output feeds %s's input — consider an orchestrator chain", ch.SpecA, ch.SpecB),
			Kind:        FixDefineOrchestrator,
			Confidence:  ConfidenceLow,
			Details:     map[string]string{"spec_a": ch.SpecA, "spec_b": ch.SpecB},
		})
		code++
	}

	for _, sr := range result.Individual {
		for _, dead := range sr.Report.DeadRules {
			suggestions = append(suggestions, Suggestion{
				Code:        fmt.Sprintf("D%03d", code),
				Description: fmt.Sprintf("rule %q in %s can never fire", dead, sr.SpecID),
				Kind:        FixDeleteRule,
				Confidence:  ConfidenceMedium,
				Details:     map[string]string{"spec": sr.SpecID, "rule": dead},
			})
			code++
		}
		for _, ov := range sr.Report.Overlaps {
			if !ov.Contradiction {
				continue
			}
			suggestions = append(suggestions, Suggestion{
				Code:        fmt.Sprintf("X%03d", code),
				Description: fmt.Sprintf("rules %q and %q in %s contradict at equal priority", ov.RuleA, ov.RuleB, sr.SpecID),
				Kind:        FixAddPriority,
				Confidence:  ConfidenceLow,
				Details:     map[string]string{"spec": sr.SpecID, "rule_a": ov.RuleA, "rule_b": ov.RuleB},
			})
			code++
		}
	}

	return suggestions
}

// ApplyResult reports what happened when ApplyFixes ran over a suggestion
// list: which were applied, which were skipped (low/medium confidence
// without override), and which errored (a stale rule or variable ID no
// longer present).
type ApplyResult struct {
	Applied []string
	Skipped []string
	Errored map[string]string
}

// ApplyFixes walks suggestions in order, applying every high-confidence fix
// (or every fix, if override is set) by calling apply for its side effect,
// and recording the outcome. Mutating the spec(s) a Suggestion refers to is
// the caller's responsibility inside apply — this function only sequences
// and classifies the attempts, since the mutation target (one spec, a pair,
// or a whole directory) differs per FixKind.
func ApplyFixes(suggestions []Suggestion, override bool, apply func(Suggestion) error) ApplyResult {
	result := ApplyResult{Errored: map[string]string{}}
	for _, s := range suggestions {
		if s.Confidence != ConfidenceHigh && !override {
			result.Skipped = append(result.Skipped, s.Code)
			continue
		}
		if err := apply(s); err != nil {
			result.Errored[s.Code] = err.Error()
			continue
		}
		result.Applied = append(result.Applied, s.Code)
	}
	return result
}
