// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package specmodel defines the decision-table spec data model shared by
// every other package in this module: the expression engine renders rule
// conditions from it, the cube algebra lifts rules from it, the analyzer
// validates it, and the code generator walks it to build a render context.
package specmodel

import "fmt"

// VarType is the declared type of a Variable. Only these seven kinds exist;
// list and enum carry extra data (ElemType, Values) rather than being
// separate type hierarchies, matching the flat sum type used throughout
// the reference implementation this package is ported from.
type VarType string

const (
	VarBool   VarType = "bool"
	VarInt    VarType = "int"
	VarFloat  VarType = "float"
	VarString VarType = "string"
	VarEnum   VarType = "enum"
	VarList   VarType = "list"
	VarObject VarType = "object"
)

// IsFiniteDomain reports whether the type's value space is small enough to
// enumerate directly (bool and enum). int/float/string are only finite
// once restricted by comparison literals appearing in conditions.
func (t VarType) IsFiniteDomain() bool {
	return t == VarBool || t == VarEnum
}

// Variable is an input or output declaration.
type Variable struct {
	Name        string   `yaml:"name" validate:"required"`
	Type        VarType  `yaml:"type" validate:"required,oneof=bool int float string enum list object"`
	ElemType    VarType  `yaml:"elem_type,omitempty"`
	Values      []string `yaml:"values,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// ConditionOp is the operator of a structured condition triple.
type ConditionOp string

const (
	OpEq        ConditionOp = "eq"
	OpNe        ConditionOp = "ne"
	OpLt        ConditionOp = "lt"
	OpLe        ConditionOp = "le"
	OpGt        ConditionOp = "gt"
	OpGe        ConditionOp = "ge"
	OpIn        ConditionOp = "in"
	OpContains  ConditionOp = "contains"
	OpTruthy    ConditionOp = "truthy"  // bare boolean variable, no literal
	OpFalsy     ConditionOp = "falsy"   // negated bare boolean variable
)

// ConditionValue is the literal operand of a structured condition, or a
// nested named map for dynamic-output construction. Exactly one field is
// populated; Kind disambiguates since a zero value is ambiguous for bools
// vs unset.
type ConditionValue struct {
	Kind  ConditionValueKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Map   map[string]ConditionValue
}

type ConditionValueKind string

const (
	ValBool   ConditionValueKind = "bool"
	ValInt    ConditionValueKind = "int"
	ValFloat  ConditionValueKind = "float"
	ValString ConditionValueKind = "string"
	ValMap    ConditionValueKind = "map"
)

func (v ConditionValue) String() string {
	switch v.Kind {
	case ValBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValInt:
		return fmt.Sprintf("%d", v.Int)
	case ValFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValString:
		return v.Str
	case ValMap:
		return "{...}"
	default:
		return ""
	}
}

// Condition is one `{var, op, value}` triple in a structured rule
// condition. Multiple conditions in a rule are ANDed together.
type Condition struct {
	Var   string         `yaml:"var"`
	Op    ConditionOp    `yaml:"op"`
	Value ConditionValue `yaml:"value"`
}

// Rule is one row of a decision table. Exactly one of When/Conditions is
// populated: When is a raw expression string, Conditions is the structured
// equivalent usable for match/switch codegen.
type Rule struct {
	ID          string      `yaml:"id" validate:"required"`
	When        string      `yaml:"when,omitempty"`
	Conditions  []Condition `yaml:"conditions,omitempty"`
	Then        Output      `yaml:"then"`
	Priority    int         `yaml:"priority"`
	Description string      `yaml:"description,omitempty"`
}

// AsCEL returns the rule's condition as a single CEL-like expression
// string, synthesizing one from Conditions (ANDed with &&) when the rule
// uses the structured form instead of a raw When string.
func (r Rule) AsCEL() string {
	if r.When != "" {
		return r.When
	}
	if len(r.Conditions) == 0 {
		return "true"
	}
	s := ""
	for i, c := range r.Conditions {
		if i > 0 {
			s += " && "
		}
		s += conditionCEL(c)
	}
	return s
}

func conditionCEL(c Condition) string {
	switch c.Op {
	case OpTruthy:
		return c.Var
	case OpFalsy:
		return "!" + c.Var
	case OpIn:
		return fmt.Sprintf("%s in %s", c.Var, c.Value.String())
	case OpContains:
		return fmt.Sprintf("%s.contains(%s)", c.Var, literalCEL(c.Value))
	default:
		return fmt.Sprintf("%s %s %s", c.Var, opSymbol(c.Op), literalCEL(c.Value))
	}
}

func opSymbol(op ConditionOp) string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "=="
	}
}

func literalCEL(v ConditionValue) string {
	switch v.Kind {
	case ValString:
		return fmt.Sprintf("%q", v.Str)
	default:
		return v.String()
	}
}

// IsStructuredEquality reports whether every condition in the rule is a
// plain equality comparison — the precondition for match/switch codegen
// and for Rule.AsCEL producing output identical to When.
func (r Rule) IsStructuredEquality() bool {
	if r.When != "" || len(r.Conditions) == 0 {
		return false
	}
	for _, c := range r.Conditions {
		if c.Op != OpEq {
			return false
		}
	}
	return true
}

// Output is either a single value/expression (Single) or a named map of them
// (Named). IsMap marks the Named form: UnmarshalYAML sets it, and fills
// Named, for every YAML mapping; any scalar is decoded into Single.
type Output struct {
	Single ConditionValue
	Named  map[string]ConditionValue
	IsMap  bool
}

// Scoping carries per-target namespace metadata used only by the generator
// to emit `package`/`namespace`/module declarations.
type Scoping struct {
	Languages LanguageScoping `yaml:"languages,omitempty"`
}

type LanguageScoping struct {
	CSharp     *SimpleScope `yaml:"csharp,omitempty"`
	Java       *SimpleScope `yaml:"java,omitempty"`
	Go         *GoScope     `yaml:"go,omitempty"`
	Python     *SimpleScope `yaml:"python,omitempty"`
	Rust       *SimpleScope `yaml:"rust,omitempty"`
	TypeScript *SimpleScope `yaml:"typescript,omitempty"`
}

type SimpleScope struct {
	Value string `yaml:"value"`
}

func (s *SimpleScope) Render() string {
	if s == nil {
		return ""
	}
	return s.Value
}

type GoScope struct {
	Package    string `yaml:"package"`
	ModulePath string `yaml:"module_path,omitempty"`
}

func (g *GoScope) Render() string {
	if g == nil {
		return ""
	}
	return g.Package
}

// Spec is a decision table: an ID, its variable declarations, its rules,
// an optional default output, and optional scoping metadata.
type Spec struct {
	ID          string     `yaml:"id" validate:"required"`
	Description string     `yaml:"description,omitempty"`
	Inputs      []Variable `yaml:"inputs"`
	Outputs     []Variable `yaml:"outputs,omitempty"`
	Rules       []Rule     `yaml:"rules" validate:"required,min=1"`
	Default     *Output    `yaml:"default,omitempty"`
	Scoping     *Scoping   `yaml:"scoping,omitempty"`
}

// InputNames returns the declared input variable names in declaration order.
func (s *Spec) InputNames() []string {
	names := make([]string, len(s.Inputs))
	for i, v := range s.Inputs {
		names[i] = v.Name
	}
	return names
}

// Variable looks up an input or output by name.
func (s *Spec) Variable(name string) (Variable, bool) {
	for _, v := range s.Inputs {
		if v.Name == name {
			return v, true
		}
	}
	for _, v := range s.Outputs {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}
