// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package exprlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string, target Target) string {
	t.Helper()
	out, err := Compile(src, target)
	require.NoError(t, err)
	return out
}

func TestSimpleComparison(t *testing.T) {
	rust := compile(t, "amount > 1000", Rust)
	assert.Contains(t, rust, "amount")
	assert.Contains(t, rust, ">")
	assert.Contains(t, rust, "1000")
}

func TestLogicalAnd(t *testing.T) {
	rust := compile(t, "a && b", Rust)
	python := compile(t, "a && b", Python)
	assert.Contains(t, rust, "&&")
	assert.Contains(t, python, "and")
}

func TestNegation(t *testing.T) {
	rust := compile(t, "!verified", Rust)
	python := compile(t, "!verified", Python)
	assert.Contains(t, rust, "!")
	assert.Contains(t, python, "not")
}

func TestInOperator(t *testing.T) {
	rust := compile(t, "x in [1, 2, 3]", Rust)
	ts := compile(t, "x in [1, 2, 3]", TypeScript)
	py := compile(t, "x in [1, 2, 3]", Python)
	assert.Contains(t, rust, ".contains(")
	assert.Contains(t, ts, ".includes(")
	assert.Contains(t, py, " in ")
}

func TestBooleanLiterals(t *testing.T) {
	assert.Contains(t, compile(t, "true", Python), "True")
	assert.Contains(t, compile(t, "false", Python), "False")
}

func TestTernary(t *testing.T) {
	rust := compile(t, "x > 0 ? 1 : 0", Rust)
	python := compile(t, "x > 0 ? 1 : 0", Python)
	assert.Contains(t, rust, "?")
	assert.Contains(t, python, "if")
	assert.Contains(t, python, "else")
}

func TestMemberAccess(t *testing.T) {
	result := compile(t, "user.account.verified", Rust)
	assert.Contains(t, result, "user.account.verified")
}

func TestFunctionSize(t *testing.T) {
	rust := compile(t, "size(items)", Rust)
	ts := compile(t, "size(items)", TypeScript)
	py := compile(t, "size(items)", Python)
	assert.Contains(t, rust, ".len()")
	assert.Contains(t, ts, ".length")
	assert.Contains(t, py, "len(")
}

func TestComplexExpression(t *testing.T) {
	expr := `amount > 1000 && !verified && status in ["pending", "review"]`
	rust := compile(t, expr, Rust)
	assert.Contains(t, rust, "&&")
	assert.Contains(t, rust, "!")
	assert.Contains(t, rust, ".contains(")
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("x > 10"))
	assert.True(t, IsValid("a && b || c"))
	assert.True(t, IsValid("size(items) > 0"))
	assert.False(t, IsValid("x >>"))
	assert.False(t, IsValid("&&"))
}

func TestEvalBoolSimple(t *testing.T) {
	vars := map[string]any{"x": int64(10)}
	ok, err := EvalBool("x > 5", vars)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvalBool("x < 5", vars)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvalBoolStringComparison(t *testing.T) {
	vars := map[string]any{"role": "admin"}
	ok, err := EvalBool(`role == "admin"`, vars)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvalBool(`role == "user"`, vars)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvalBoolLogical(t *testing.T) {
	vars := map[string]any{"a": true, "b": false}
	ok, err := EvalBool("a && b", vars)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = EvalBool("a || b", vars)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvalBool("!b", vars)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvalInt(t *testing.T) {
	vars := map[string]any{"x": int64(10), "y": int64(5)}
	v, err := EvalInt("x + y", vars)
	require.NoError(t, err)
	assert.Equal(t, int64(15), v)

	v, err = EvalInt("x * y", vars)
	require.NoError(t, err)
	assert.Equal(t, int64(50), v)
}

func TestEvalFloat(t *testing.T) {
	vars := map[string]any{"weight": 10.5, "rate": 2.0}
	v, err := EvalFloat("weight * rate", vars)
	require.NoError(t, err)
	assert.InDelta(t, 21.0, v, 0.001)
}

func TestEvalComplexCondition(t *testing.T) {
	vars := map[string]any{"role": "member", "verified": true, "level": int64(50)}
	ok, err := EvalBool(`role == "member" && verified && level >= 50`, vars)
	require.NoError(t, err)
	assert.True(t, ok)

	vars["verified"] = false
	ok, err = EvalBool(`role == "member" && verified && level >= 50`, vars)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractVariables(t *testing.T) {
	vars, err := ExtractVariables(`amount > 1000 && status in ["a", "b"] && user.verified`)
	require.NoError(t, err)
	assert.Equal(t, []string{"amount", "status", "user"}, vars)
}

func TestValidateVariablesUndefined(t *testing.T) {
	err := ValidateVariables("amount > threshold", []string{"amount"})
	assert.Error(t, err)
}

func TestValidateVariablesOK(t *testing.T) {
	err := ValidateVariables("amount > threshold", []string{"amount", "threshold"})
	assert.NoError(t, err)
}

func TestRenderGoIdioms(t *testing.T) {
	assert.Equal(t, `contains([1, 2, 3], x)`, compile(t, "x in [1, 2, 3]", Go))
	assert.Equal(t, "len(items)", compile(t, "size(items)", Go))
	assert.Equal(t, `strings.HasPrefix(name, "a")`, compile(t, `startsWith(name, "a")`, Go))
}

func TestRenderMethodStyleFallsThroughToGenericCall(t *testing.T) {
	// A dotted call on a non-builtin receiver renders as a plain method
	// call in the target language rather than triggering built-in dispatch.
	assert.Equal(t, "user.refresh()", compile(t, "user.refresh()", Go))
}

func TestRenderStructFields(t *testing.T) {
	out := compile(t, `Point{x: 1, y: 2}`, Rust)
	assert.Equal(t, "Point { x: 1, y: 2 }", out)
}
