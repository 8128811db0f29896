// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package completeness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outboundlabs/imacs/internal/specmodel"
)

func boolVar(name string) specmodel.Variable {
	return specmodel.Variable{Name: name, Type: specmodel.VarBool}
}

func enumVar(name string, values ...string) specmodel.Variable {
	return specmodel.Variable{Name: name, Type: specmodel.VarEnum, Values: values}
}

func strLit(s string) specmodel.ConditionValue {
	return specmodel.ConditionValue{Kind: specmodel.ValString, Str: s}
}

func rule(id string, priority int, when string, output string) specmodel.Rule {
	return specmodel.Rule{
		ID: id, Priority: priority, When: when,
		Then: specmodel.Output{Single: strLit(output)},
	}
}

func TestAnalyzeCompleteBooleanSpec(t *testing.T) {
	spec := &specmodel.Spec{
		ID:     "access",
		Inputs: []specmodel.Variable{boolVar("verified")},
		Rules: []specmodel.Rule{
			rule("allow", 1, "verified", "allow"),
			rule("deny", 0, "!verified", "deny"),
		},
	}

	report := Analyze(spec, true)
	assert.True(t, report.IsComplete)
	assert.Equal(t, ModeFull, report.Mode)
	assert.InDelta(t, 1.0, report.CoverageRatio, 1e-9)
	assert.Empty(t, report.MissingCases)
	assert.Empty(t, report.DeadRules)
}

func TestAnalyzeMissingCase(t *testing.T) {
	spec := &specmodel.Spec{
		ID:     "access",
		Inputs: []specmodel.Variable{boolVar("verified"), boolVar("admin")},
		Rules: []specmodel.Rule{
			rule("allow", 1, "verified && admin", "allow"),
		},
	}

	report := Analyze(spec, true)
	assert.False(t, report.IsComplete)
	assert.NotEmpty(t, report.MissingCases)
	assert.Less(t, report.CoverageRatio, 1.0)
}

func TestAnalyzeContradiction(t *testing.T) {
	spec := &specmodel.Spec{
		ID:     "access",
		Inputs: []specmodel.Variable{boolVar("verified")},
		Rules: []specmodel.Rule{
			rule("allow", 1, "verified", "allow"),
			rule("deny", 1, "verified", "deny"),
		},
	}

	report := Analyze(spec, true)
	assert.False(t, report.IsComplete)
	require.Len(t, report.Overlaps, 1)
	assert.True(t, report.Overlaps[0].Contradiction)
	assert.False(t, report.Overlaps[0].Duplicate)
}

func TestAnalyzeDuplicate(t *testing.T) {
	spec := &specmodel.Spec{
		ID:     "access",
		Inputs: []specmodel.Variable{boolVar("verified")},
		Rules: []specmodel.Rule{
			rule("allow1", 1, "verified", "allow"),
			rule("allow2", 1, "verified", "allow"),
		},
	}

	report := Analyze(spec, true)
	require.Len(t, report.Overlaps, 1)
	assert.True(t, report.Overlaps[0].Duplicate)
	assert.False(t, report.Overlaps[0].Contradiction)
}

func TestAnalyzeDeadRule(t *testing.T) {
	spec := &specmodel.Spec{
		ID:     "access",
		Inputs: []specmodel.Variable{boolVar("verified"), boolVar("admin")},
		Rules: []specmodel.Rule{
			rule("catch_all", 10, "true", "allow"),
			rule("never_fires", 5, "verified && admin", "deny"),
		},
	}

	report := Analyze(spec, true)
	require.Len(t, report.DeadRules, 1)
	assert.Equal(t, "never_fires", report.DeadRules[0])
}

func TestAnalyzeTautologyRule(t *testing.T) {
	spec := &specmodel.Spec{
		ID:     "access",
		Inputs: []specmodel.Variable{boolVar("verified")},
		Rules: []specmodel.Rule{
			rule("always", 1, "true", "allow"),
		},
	}

	report := Analyze(spec, true)
	require.Len(t, report.TautologyRules, 1)
	assert.Equal(t, "always", report.TautologyRules[0])
}

func TestAnalyzeTypeMismatch(t *testing.T) {
	spec := &specmodel.Spec{
		ID:     "access",
		Inputs: []specmodel.Variable{enumVar("role", "admin", "member")},
		Rules: []specmodel.Rule{
			{
				ID:       "bad",
				Priority: 1,
				Conditions: []specmodel.Condition{
					{Var: "role", Op: specmodel.OpEq, Value: strLit("owner")},
				},
				Then: specmodel.Output{Single: strLit("allow")},
			},
		},
	}

	report := Analyze(spec, true)
	require.Len(t, report.TypeMismatches, 1)
	assert.Equal(t, "role", report.TypeMismatches[0].Variable)
}

func TestAnalyzeSuiteCollision(t *testing.T) {
	specA := &specmodel.Spec{
		ID:     "a",
		Inputs: []specmodel.Variable{boolVar("flag")},
		Rules:  []specmodel.Rule{rule("r1", 0, "flag", "x")},
	}
	specB := &specmodel.Spec{
		ID:     "b",
		Inputs: []specmodel.Variable{{Name: "flag", Type: specmodel.VarInt}},
		Rules:  []specmodel.Rule{rule("r2", 0, "true", "y")},
	}

	result := AnalyzeSuite([]NamedSpec{{ID: "a", Spec: specA}, {ID: "b", Spec: specB}}, true)
	require.Len(t, result.Collisions, 1)
	assert.Equal(t, "flag", result.Collisions[0].VariableName)
}

func TestAnalyzeSuiteChain(t *testing.T) {
	specA := &specmodel.Spec{
		ID:      "a",
		Inputs:  []specmodel.Variable{boolVar("in1")},
		Outputs: []specmodel.Variable{boolVar("score")},
		Rules:   []specmodel.Rule{rule("r1", 0, "true", "x")},
	}
	specB := &specmodel.Spec{
		ID:     "b",
		Inputs: []specmodel.Variable{boolVar("score")},
		Rules:  []specmodel.Rule{rule("r2", 0, "true", "y")},
	}

	result := AnalyzeSuite([]NamedSpec{{ID: "a", Spec: specA}, {ID: "b", Spec: specB}}, true)
	require.Len(t, result.Chains, 1)
	assert.Equal(t, "score", result.Chains[0].OutputName)
}

func TestAnalyzeOrchestratorSuiteMissingSpec(t *testing.T) {
	orch := &specmodel.Orchestrator{
		ID:   "flow",
		Uses: []string{"spec_a", "spec_b"},
		Chain: []specmodel.ChainStep{
			{Kind: specmodel.StepCall, ID: "step1", Spec: "spec_a", Inputs: map[string]string{}},
		},
	}
	specs := map[string]*specmodel.Spec{
		"spec_a": {ID: "spec_a", Rules: []specmodel.Rule{rule("r", 0, "true", "x")}},
	}

	result := AnalyzeOrchestratorSuite(orch, specs, false)
	assert.Equal(t, "flow", result.OrchestratorID)
	assert.Len(t, result.ReferencedSpecIDs, 2)
	assert.Equal(t, []string{"spec_a"}, result.FoundSpecs)
	assert.Equal(t, []string{"spec_b"}, result.MissingSpecs)
}

func TestCheckChainMappingsMissingInput(t *testing.T) {
	specs := map[string]*specmodel.Spec{
		"spec_a": {
			ID:     "spec_a",
			Inputs: []specmodel.Variable{boolVar("required_flag")},
			Rules:  []specmodel.Rule{rule("r", 0, "true", "x")},
		},
	}
	steps := []specmodel.ChainStep{
		{Kind: specmodel.StepCall, ID: "step1", Spec: "spec_a", Inputs: map[string]string{}},
	}

	issues := checkChainMappings(steps, specs)
	require.Len(t, issues, 1)
	assert.Equal(t, MissingInput, issues[0].Type)
}

func TestApplyFixesRespectsConfidence(t *testing.T) {
	suggestions := []Suggestion{
		{Code: "H1", Confidence: ConfidenceHigh},
		{Code: "L1", Confidence: ConfidenceLow},
	}
	var applied []string
	result := ApplyFixes(suggestions, false, func(s Suggestion) error {
		applied = append(applied, s.Code)
		return nil
	})
	assert.Equal(t, []string{"H1"}, result.Applied)
	assert.Equal(t, []string{"L1"}, result.Skipped)
	assert.Equal(t, []string{"H1"}, applied)
}
