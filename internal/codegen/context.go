// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

// InputView and OutputView carry one declared variable's name/type rendered
// every way a template might need it: its own casing and all six target
// type spellings, computed once so templates never call into Go code.
type InputView struct {
	Name       string
	NamePascal string
	NameCamel  string
	VarType    string
	RustType   string
	TSType     string
	PyType     string
	GoType     string
	JavaType   string
	CSharpType string
}

type OutputView = InputView

func newVarView(v specmodel.Variable, specID string) InputView {
	return InputView{
		Name:       v.Name,
		NamePascal: ToPascalCase(v.Name),
		NameCamel:  ToCamelCase(v.Name),
		VarType:    string(v.Type),
		RustType:   MapType(v, specID, exprlang.Rust),
		TSType:     MapType(v, specID, exprlang.TypeScript),
		PyType:     MapType(v, specID, exprlang.Python),
		GoType:     MapType(v, specID, exprlang.Go),
		JavaType:   MapType(v, specID, exprlang.Java),
		CSharpType: MapType(v, specID, exprlang.CSharp),
	}
}

// NamedValueView is one entry of a named/map-shaped rule output, rendered to
// every target's value syntax.
type NamedValueView struct {
	Key        string
	RustValue  string
	TSValue    string
	PyValue    string
	GoValue    string
	JavaValue  string
	CSharpVal  string
}

// OutputValueView is a rule's (or the spec's default) output: either a
// single scalar/expression value or a named map of them, each target-
// rendered the same way NamedValueView is.
type OutputValueView struct {
	IsSingle   bool
	RustValue  string
	TSValue    string
	PyValue    string
	GoValue    string
	JavaValue  string
	CSharpVal  string
	Named      map[string]NamedValueView
}

func newOutputValueView(out specmodel.Output, inputNames []string) OutputValueView {
	// Output.Single populated with a Map kind is the same "named output with
	// no declared Outputs list" shape as Output.Named — both render through
	// the named-map path; untagged YAML can produce either representation
	// for the same document.
	if out.IsMap || (out.Single.Kind == specmodel.ValMap) {
		named := out.Named
		if named == nil {
			named = out.Single.Map
		}
		return OutputValueView{IsSingle: false, Named: namedViews(named, inputNames)}
	}
	return OutputValueView{
		IsSingle:  true,
		RustValue: renderValue(out.Single, inputNames, exprlang.Rust),
		TSValue:   renderValue(out.Single, inputNames, exprlang.TypeScript),
		PyValue:   renderValue(out.Single, inputNames, exprlang.Python),
		GoValue:   renderValue(out.Single, inputNames, exprlang.Go),
		JavaValue: renderValue(out.Single, inputNames, exprlang.Java),
		CSharpVal: renderValue(out.Single, inputNames, exprlang.CSharp),
	}
}

func namedViews(m map[string]specmodel.ConditionValue, inputNames []string) map[string]NamedValueView {
	out := make(map[string]NamedValueView, len(m))
	for k, v := range m {
		out[k] = NamedValueView{
			Key:       k,
			RustValue: renderValue(v, inputNames, exprlang.Rust),
			TSValue:   renderValue(v, inputNames, exprlang.TypeScript),
			PyValue:   renderValue(v, inputNames, exprlang.Python),
			GoValue:   renderValue(v, inputNames, exprlang.Go),
			JavaValue: renderValue(v, inputNames, exprlang.Java),
			CSharpVal: renderValue(v, inputNames, exprlang.CSharp),
		}
	}
	return out
}

// RuleView is one decision-table row rendered as both a condition string (in
// all six targets, compiled via internal/exprlang) and an output value.
type RuleView struct {
	ID          string
	Priority    int
	Description string
	IsCEL       bool // false only for an always-true default-shaped rule
	ConditionRust string
	ConditionTS   string
	ConditionPy   string
	ConditionGo   string
	ConditionJava string
	ConditionCSharp string
	Output      OutputValueView
}

func newRuleView(rule specmodel.Rule, inputNames []string) RuleView {
	cel := rule.AsCEL()
	rv := RuleView{
		ID:          rule.ID,
		Priority:    rule.Priority,
		Description: rule.Description,
		IsCEL:       cel != "" && cel != "true",
		Output:      newOutputValueView(rule.Then, inputNames),
	}
	rv.ConditionRust = compileOr(cel, exprlang.Rust, "true")
	rv.ConditionTS = compileOr(cel, exprlang.TypeScript, "true")
	rv.ConditionPy = compileOr(cel, exprlang.Python, "True")
	rv.ConditionGo = compileOr(cel, exprlang.Go, "true")
	rv.ConditionJava = compileOr(cel, exprlang.Java, "true")
	rv.ConditionCSharp = compileOr(cel, exprlang.CSharp, "true")
	return rv
}

func compileOr(src string, target exprlang.Target, fallback string) string {
	if src == "" {
		return fallback
	}
	compiled, err := exprlang.Compile(src, target)
	if err != nil {
		return fallback
	}
	return compiled
}

// SpecContext is the fully-resolved render context handed to every
// (subject × target) template: one per spec-generation request.
type SpecContext struct {
	ID            string
	IDPascal      string
	IDCamel       string
	Description   string
	SpecHash      string
	Provenance    bool
	GeneratedAt   string
	Inputs        []InputView
	Outputs       []OutputView
	Rules         []RuleView
	Default       *OutputValueView
	UseMatch      bool
	NeedsHashMap  bool
	HasNamedOutputs bool
	Target        string

	// Per-target namespace metadata; only the field(s) relevant to Target
	// are populated (extractNamespaceFields resolves from Spec.Scoping).
	Namespace  string // C#
	Package    string // Java, Go
	ModulePath string // Go
	Module     string // Python, Rust, TypeScript
}

// NewSpecContext builds a SpecContext for one target, deterministically
// hashing the spec (field order is fixed by struct layout so the hash is
// stable across runs, used by generators to detect staleness against a
// previously emitted file).
func NewSpecContext(spec *specmodel.Spec, target exprlang.Target, provenance bool, generatedAt string) (*SpecContext, error) {
	hash, err := specHash(spec)
	if err != nil {
		return nil, err
	}

	inputNames := spec.InputNames()

	ctx := &SpecContext{
		ID:          spec.ID,
		IDPascal:    ToPascalCase(spec.ID),
		IDCamel:     ToCamelCase(spec.ID),
		Description: spec.Description,
		SpecHash:    hash,
		Provenance:  provenance,
		GeneratedAt: generatedAt,
		Target:      string(target),
	}

	for _, v := range spec.Inputs {
		ctx.Inputs = append(ctx.Inputs, newVarView(v, spec.ID))
	}
	for _, v := range spec.Outputs {
		ctx.Outputs = append(ctx.Outputs, newVarView(v, spec.ID))
	}
	for _, r := range spec.Rules {
		ctx.Rules = append(ctx.Rules, newRuleView(r, inputNames))
	}
	// Evaluation order matches internal/completeness's dead-rule ordering
	// decision: higher Priority fires first, ties keep declaration order.
	sort.SliceStable(ctx.Rules, func(i, j int) bool {
		return ctx.Rules[i].Priority > ctx.Rules[j].Priority
	})
	if spec.Default != nil {
		dv := newOutputValueView(*spec.Default, inputNames)
		ctx.Default = &dv
	}

	ctx.UseMatch = allRulesStructuredEquality(spec.Rules)
	ctx.HasNamedOutputs = len(spec.Outputs) == 0 && specHasNamedOutput(spec)
	ctx.NeedsHashMap = ctx.HasNamedOutputs

	ctx.Namespace, ctx.Package, ctx.ModulePath, ctx.Module = extractNamespaceFields(spec, target)

	return ctx, nil
}

// allRulesStructuredEquality reports whether every rule can compile to a
// match/switch statement: structured, equality-only conditions throughout.
func allRulesStructuredEquality(rules []specmodel.Rule) bool {
	if len(rules) == 0 {
		return false
	}
	for _, r := range rules {
		if !r.IsStructuredEquality() {
			return false
		}
	}
	return true
}

func specHasNamedOutput(spec *specmodel.Spec) bool {
	for _, r := range spec.Rules {
		if r.Then.IsMap || r.Then.Single.Kind == specmodel.ValMap {
			return true
		}
	}
	if spec.Default != nil && (spec.Default.IsMap || spec.Default.Single.Kind == specmodel.ValMap) {
		return true
	}
	return false
}

// extractNamespaceFields reads the target-specific namespace out of the
// spec's optional Scoping block. Only the tuple member(s) relevant to
// target are ever non-empty.
func extractNamespaceFields(spec *specmodel.Spec, target exprlang.Target) (namespace, pkg, modulePath, module string) {
	if spec.Scoping == nil {
		return "", "", "", ""
	}
	lang := spec.Scoping.Languages
	switch target {
	case exprlang.CSharp:
		return lang.CSharp.Render(), "", "", ""
	case exprlang.Java:
		return "", lang.Java.Render(), "", ""
	case exprlang.Go:
		if lang.Go != nil {
			return "", lang.Go.Package, lang.Go.ModulePath, ""
		}
		return "", "", "", ""
	case exprlang.Python:
		return "", "", "", lang.Python.Render()
	case exprlang.Rust:
		return "", "", "", lang.Rust.Render()
	case exprlang.TypeScript:
		return "", "", "", lang.TypeScript.Render()
	}
	return "", "", "", ""
}

// specHash is a stable content hash of a spec's declared shape, independent
// of map-iteration order since json.Marshal sorts map keys.
func specHash(spec *specmodel.Spec) (string, error) {
	b, err := json.Marshal(spec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:16], nil
}
