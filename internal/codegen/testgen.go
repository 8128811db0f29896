// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"fmt"
	"strings"

	"github.com/outboundlabs/imacs/internal/boolcover"
	"github.com/outboundlabs/imacs/internal/completeness"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

// TestCase is one synthesized input/expected-output pair for a generated
// spec evaluator.
type TestCase struct {
	Name         string
	RuleID       string // "" for the default/fallback case
	Inputs       map[string]any
	ExpectedDesc string // human-readable description of the expected output
}

// exhaustiveThreshold has the same value as maxFullPredicates: when the
// cartesian product of every bool/enum input's value count exceeds it, the
// exhaustive test is replaced by one boundary case per rule instead.
const exhaustiveThreshold = 64

// GenerateTestCases implements the three test-emission modes described by
// the code generator: one positive test per rule (inputs read from that
// rule's own structured conditions), one property test asserting
// every input produces some output (the spec's completeness guarantee), and
// either an exhaustive cartesian-product sweep (when the boolean/enum input
// space is small enough) or a per-rule boundary-value test otherwise.
func GenerateTestCases(spec *specmodel.Spec) []TestCase {
	var cases []TestCase

	// Same two-pass discipline as Analyze: extract every rule's clauses
	// first so the alphabet is fully populated before any cube is encoded,
	// or rules processed early would be encoded at a narrower width.
	alphabet := completeness.NewAlphabet()
	for _, rule := range spec.Rules {
		completeness.ExtractRuleClauses(rule, alphabet)
	}
	cubeSets := make([][]boolcover.Cube, len(spec.Rules))
	for i, rule := range spec.Rules {
		rc := completeness.ExtractRuleClauses(rule, alphabet)
		cubeSets[i] = completeness.EncodeCube(rc, alphabet)
	}

	for i, rule := range spec.Rules {
		cases = append(cases, TestCase{
			Name:         "rule_" + rule.ID,
			RuleID:       rule.ID,
			Inputs:       synthesizeInputs(spec, rule, cubeSets[i]),
			ExpectedDesc: describeOutput(rule.Then),
		})
	}

	finiteInputs := finiteDomainInputs(spec)
	totalDomainSize := 1
	for _, values := range finiteInputs {
		totalDomainSize *= len(values)
	}
	if len(finiteInputs) > 0 && totalDomainSize <= exhaustiveThreshold {
		cases = append(cases, exhaustiveCases(spec, finiteInputs)...)
	} else {
		cases = append(cases, boundaryCases(spec, cubeSets)...)
	}

	cases = append(cases, TestCase{
		Name:         "property_every_input_produces_output",
		ExpectedDesc: "every synthesized input must match some rule or the spec default",
	})

	return cases
}

// synthesizeInputs picks one concrete assignment for rule: every input starts
// at its zero value, then each of rule's structured conditions sets its
// variable to the condition's literal (true/false for truthy/falsy). Rules
// whose condition is only a `when` expression, or whose cube set is empty,
// keep the zero values; the cube literals themselves are not decoded.
func synthesizeInputs(spec *specmodel.Spec, rule specmodel.Rule, cubes []boolcover.Cube) map[string]any {
	inputs := map[string]any{}
	for _, v := range spec.Inputs {
		inputs[v.Name] = zeroValue(v)
	}
	if len(cubes) == 0 {
		return inputs
	}
	// The clause's literal predicates were interned as rendered Go-target
	// boolean expressions (see internal/completeness/predicates.go); parsing
	// them back out would duplicate exprlang's own parser, so instead we
	// fall back on the declaring rule's structured Conditions when present,
	// which already carry the literal value directly.
	for _, c := range rule.Conditions {
		if _, ok := inputs[c.Var]; ok {
			inputs[c.Var] = conditionTestValue(c)
		}
	}
	return inputs
}

func conditionTestValue(c specmodel.Condition) any {
	switch c.Op {
	case specmodel.OpTruthy:
		return true
	case specmodel.OpFalsy:
		return false
	default:
		switch c.Value.Kind {
		case specmodel.ValBool:
			return c.Value.Bool
		case specmodel.ValInt:
			return c.Value.Int
		case specmodel.ValFloat:
			return c.Value.Float
		case specmodel.ValString:
			return c.Value.Str
		default:
			return nil
		}
	}
}

func zeroValue(v specmodel.Variable) any {
	switch v.Type {
	case specmodel.VarBool:
		return false
	case specmodel.VarInt:
		return int64(0)
	case specmodel.VarFloat:
		return 0.0
	case specmodel.VarString:
		return ""
	case specmodel.VarEnum:
		if len(v.Values) > 0 {
			return v.Values[0]
		}
		return ""
	default:
		return nil
	}
}

// finiteDomainInputs returns, for every bool/enum input, its enumerable
// value set — the basis for the exhaustive cartesian-product test.
func finiteDomainInputs(spec *specmodel.Spec) map[string][]any {
	out := map[string][]any{}
	for _, v := range spec.Inputs {
		if !v.Type.IsFiniteDomain() {
			continue
		}
		if v.Type == specmodel.VarBool {
			out[v.Name] = []any{false, true}
			continue
		}
		values := make([]any, len(v.Values))
		for i, s := range v.Values {
			values[i] = s
		}
		out[v.Name] = values
	}
	return out
}

func exhaustiveCases(spec *specmodel.Spec, domains map[string][]any) []TestCase {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	var cases []TestCase
	var build func(i int, assignment map[string]any)
	build = func(i int, assignment map[string]any) {
		if i == len(names) {
			snapshot := make(map[string]any, len(assignment))
			for k, v := range assignment {
				snapshot[k] = v
			}
			cases = append(cases, TestCase{
				Name:         "exhaustive_" + describeAssignment(snapshot),
				Inputs:       snapshot,
				ExpectedDesc: "first matching rule or default",
			})
			return
		}
		for _, val := range domains[names[i]] {
			assignment[names[i]] = val
			build(i+1, assignment)
		}
	}
	build(0, map[string]any{})
	return cases
}

func describeAssignment(assignment map[string]any) string {
	var parts []string
	for k, v := range assignment {
		parts = append(parts, fmt.Sprintf("%s_%v", k, v))
	}
	return strings.Join(parts, "_")
}

// boundaryCases emits one boundary-value test per rule when the input space
// is too large to enumerate: reuses each rule's synthesized inputs, labeled
// as a boundary rather than an exhaustive-sweep case. cubeSets are the
// per-rule cubes GenerateTestCases already encoded against the full alphabet.
func boundaryCases(spec *specmodel.Spec, cubeSets [][]boolcover.Cube) []TestCase {
	var cases []TestCase
	for i, rule := range spec.Rules {
		cases = append(cases, TestCase{
			Name:         "boundary_" + rule.ID,
			RuleID:       rule.ID,
			Inputs:       synthesizeInputs(spec, rule, cubeSets[i]),
			ExpectedDesc: describeOutput(rule.Then),
		})
	}
	return cases
}

func describeOutput(out specmodel.Output) string {
	if out.IsMap {
		var parts []string
		for k, v := range out.Named {
			parts = append(parts, k+"="+v.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return out.Single.String()
}

// RenderGoTestSource emits a Go table-driven test file exercising the
// generated Go evaluator against every synthesized TestCase that carries
// inputs, in the teacher's testify-based test style. The input-less property
// case produces no subtest.
func RenderGoTestSource(spec *specmodel.Spec, cases []TestCase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated from spec %s. DO NOT EDIT.\n", spec.ID)
	fmt.Fprintf(&b, "package %s_test\n\n", spec.ID)
	b.WriteString("import (\n\t\"testing\"\n\n\t\"github.com/stretchr/testify/assert\"\n)\n\n")
	fmt.Fprintf(&b, "func Test%sGenerated(t *testing.T) {\n", ToPascalCase(spec.ID))
	for _, c := range cases {
		if c.Inputs == nil {
			continue
		}
		fmt.Fprintf(&b, "\tt.Run(%q, func(t *testing.T) {\n", c.Name)
		fmt.Fprintf(&b, "\t\t// expected: %s\n", c.ExpectedDesc)
		fmt.Fprintf(&b, "\t\tinput := %s.%sInput{", spec.ID, ToPascalCase(spec.ID))
		for name, val := range c.Inputs {
			fmt.Fprintf(&b, "%s: %#v, ", ToPascalCase(name), val)
		}
		b.WriteString("}\n")
		fmt.Fprintf(&b, "\t\tgot := %s.Evaluate%s(input)\n", spec.ID, ToPascalCase(spec.ID))
		b.WriteString("\t\tassert.NotNil(t, got)\n")
		b.WriteString("\t})\n")
	}
	b.WriteString("}\n")
	return b.String()
}
