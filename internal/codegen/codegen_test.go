// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

func TestCasing(t *testing.T) {
	assert.Equal(t, "HelloWorld", ToPascalCase("hello_world"))
	assert.Equal(t, "Foo", ToPascalCase("foo"))
	assert.Equal(t, "helloWorld", ToCamelCase("hello_world"))
	assert.Equal(t, "foo", ToCamelCase("foo"))
	assert.Equal(t, "hello_world", ToSnakeCase("HelloWorld"))
	assert.Equal(t, "foo_bar", ToSnakeCase("fooBar"))
	assert.Equal(t, "HELLO_WORLD", ToUpperSnakeCase("HelloWorld"))
}

func TestMapType(t *testing.T) {
	v := specmodel.Variable{Name: "score", Type: specmodel.VarInt}
	assert.Equal(t, "int64", MapType(v, "access", exprlang.Go))
	assert.Equal(t, "i64", MapType(v, "access", exprlang.Rust))
	assert.Equal(t, "number", MapType(v, "access", exprlang.TypeScript))

	list := specmodel.Variable{Name: "tags", Type: specmodel.VarList, ElemType: specmodel.VarString}
	assert.Equal(t, "[]string", MapType(list, "access", exprlang.Go))
	assert.Equal(t, "string[]", MapType(list, "access", exprlang.TypeScript))
}

func testSpec() *specmodel.Spec {
	return &specmodel.Spec{
		ID: "access",
		Inputs: []specmodel.Variable{
			{Name: "verified", Type: specmodel.VarBool},
		},
		Rules: []specmodel.Rule{
			{ID: "allow", Priority: 1, When: "verified", Then: specmodel.Output{Single: specmodel.ConditionValue{Kind: specmodel.ValString, Str: "allow"}}},
			{ID: "deny", Priority: 0, When: "!verified", Then: specmodel.Output{Single: specmodel.ConditionValue{Kind: specmodel.ValString, Str: "deny"}}},
		},
	}
}

func TestNewSpecContext(t *testing.T) {
	ctx, err := NewSpecContext(testSpec(), exprlang.Go, true, "2026-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "Access", ctx.IDPascal)
	require.Len(t, ctx.Rules, 2)
	assert.Equal(t, "allow", ctx.Rules[0].ID) // higher priority fires first
	assert.NotEmpty(t, ctx.SpecHash)
}

func TestGenerateSpecAllTargets(t *testing.T) {
	out, err := GenerateSpecAllTargets(testSpec(), false, "2026-01-01T00:00:00Z")
	require.NoError(t, err)
	require.Len(t, out, len(exprlang.Targets))
	assert.Contains(t, out["go"], "func EvaluateAccess")
	assert.Contains(t, out["python"], "def evaluate_access")
	assert.Contains(t, out["rust"], "fn evaluate_access")
}

func TestGenerateTestCases(t *testing.T) {
	cases := GenerateTestCases(testSpec())
	var names []string
	for _, c := range cases {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "rule_allow")
	assert.Contains(t, names, "rule_deny")
	assert.Contains(t, names, "property_every_input_produces_output")
}

func TestNewOrchestratorContext(t *testing.T) {
	orch := &specmodel.Orchestrator{
		ID: "flow",
		Outputs: []specmodel.Variable{
			{Name: "decision", Type: specmodel.VarString},
		},
		Chain: []specmodel.ChainStep{
			{Kind: specmodel.StepCall, ID: "step1", Spec: "access", Inputs: map[string]string{"verified": "true"}, OutputAs: "decision"},
		},
	}
	specs := map[string]*specmodel.Spec{
		"access": {
			ID:      "access",
			Outputs: []specmodel.Variable{{Name: "decision", Type: specmodel.VarString}},
		},
	}
	ctx := NewOrchestratorContext(orch, specs, exprlang.Go)
	assert.Contains(t, ctx.Body, "CallAccess")
	assert.Contains(t, ctx.OutputProjection, "decision")
}

func TestRenderOutputProjection_PerTarget(t *testing.T) {
	orch := &specmodel.Orchestrator{
		ID: "flow",
		Outputs: []specmodel.Variable{
			{Name: "decision", Type: specmodel.VarString},
		},
		Chain: []specmodel.ChainStep{
			{Kind: specmodel.StepCall, ID: "step1", Spec: "access", OutputAs: "decision"},
		},
	}
	specs := map[string]*specmodel.Spec{
		"access": {
			ID:      "access",
			Outputs: []specmodel.Variable{{Name: "decision", Type: specmodel.VarString}},
		},
	}

	cases := []struct {
		target exprlang.Target
		want   string
	}{
		{exprlang.Go, `result["decision"] = decision`},
		{exprlang.Python, `result["decision"] = decision`},
		{exprlang.TypeScript, `result["decision"] = decision;`},
		{exprlang.CSharp, `result["decision"] = decision;`},
		{exprlang.Java, `result.put("decision", decision);`},
		{exprlang.Rust, `result.insert("decision".to_string(), serde_json::json!(decision));`},
	}
	for _, c := range cases {
		ctx := NewOrchestratorContext(orch, specs, c.target)
		assert.Contains(t, ctx.OutputProjection, c.want, "target %s", c.target)
		// Java and Rust must never fall back to invalid bracket-assignment.
		if c.target == exprlang.Java || c.target == exprlang.Rust {
			assert.NotContains(t, ctx.OutputProjection, `result["decision"] =`)
		}
	}
}
