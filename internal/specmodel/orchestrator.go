// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package specmodel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Orchestrator is a spec variant whose body is a control-flow graph (chain)
// over other specs rather than a decision table.
type Orchestrator struct {
	ID          string      `yaml:"id" validate:"required"`
	Description string      `yaml:"description,omitempty"`
	Uses        []string    `yaml:"uses,omitempty"`
	Inputs      []Variable  `yaml:"inputs,omitempty"`
	Outputs     []Variable  `yaml:"outputs,omitempty"`
	Chain       []ChainStep `yaml:"chain" validate:"required,min=1"`
}

// WaitStrategy controls how a Parallel step waits for its branches.
type WaitStrategy string

const (
	WaitAll         WaitStrategy = "all"
	WaitAny         WaitStrategy = "any"
	WaitFirstSucc   WaitStrategy = "first_success"
)

// RetryConfig configures retry behavior on a Call step.
type RetryConfig struct {
	MaxAttempts     int     `yaml:"max_attempts"`
	DelayMS         int     `yaml:"delay_ms"`
	ExponentialBase float64 `yaml:"exponential_base,omitempty"`
}

// CatchBlock is one arm of a Try step's catch list.
type CatchBlock struct {
	ErrorPattern string      `yaml:"error_pattern,omitempty"`
	Steps        []ChainStep `yaml:"steps"`
}

// ChainStep is the 13-variant sum type over orchestrator steps. Exactly
// one of the embedded pointer fields is non-nil; Kind names which. This
// mirrors a `#[serde(tag = "step", rename_all = "lowercase")]` enum: a Go
// tagged union over a discriminator field plus per-kind payload, decoded
// by hand in UnmarshalYAML rather than via struct embedding ambiguity.
type ChainStep struct {
	Kind StepKind

	ID string // step identifier, used by Branch/Loop/ForEach/Try targets and duplicate-ID checks

	// Call
	Spec       string            `yaml:"spec,omitempty"`
	Inputs     map[string]string `yaml:"inputs,omitempty"`
	OutputAs   string            `yaml:"output_as,omitempty"`
	Retry      *RetryConfig      `yaml:"retry,omitempty"`

	// Parallel
	Branches []ChainStep  `yaml:"branches,omitempty"`
	Wait     WaitStrategy `yaml:"wait,omitempty"`

	// Branch
	Condition string      `yaml:"condition,omitempty"`
	Then      []ChainStep `yaml:"then,omitempty"`
	Else      []ChainStep `yaml:"else,omitempty"`

	// Loop
	Counter       string `yaml:"counter,omitempty"`
	MaxIterations int    `yaml:"max_iterations,omitempty"`
	Until         string `yaml:"until,omitempty"`
	Body          []ChainStep `yaml:"body,omitempty"`

	// ForEach
	Items     string `yaml:"items,omitempty"`
	ItemName  string `yaml:"item_name,omitempty"`
	IndexName string `yaml:"index_name,omitempty"`

	// Gate
	Expression string `yaml:"expression,omitempty"`

	// Return / Compute / Set
	Value string `yaml:"value,omitempty"`

	// Try
	TrySteps []ChainStep  `yaml:"try,omitempty"`
	Catch    []CatchBlock `yaml:"catch,omitempty"`
	Finally  []ChainStep  `yaml:"finally,omitempty"`

	// Dynamic
	SpecExpr string   `yaml:"spec_expr,omitempty"`
	Allowed  []string `yaml:"allowed,omitempty"`

	// Await
	Target string `yaml:"target,omitempty"`

	// Emit
	Event   string            `yaml:"event,omitempty"`
	Payload map[string]string `yaml:"payload,omitempty"`
}

// StepKind discriminates ChainStep's payload, decoded from the YAML `step` tag.
type StepKind string

const (
	StepCall     StepKind = "call"
	StepParallel StepKind = "parallel"
	StepBranch   StepKind = "branch"
	StepLoop     StepKind = "loop"
	StepForEach  StepKind = "foreach"
	StepGate     StepKind = "gate"
	StepReturn   StepKind = "return"
	StepCompute  StepKind = "compute"
	StepSet      StepKind = "set"
	StepTry      StepKind = "try"
	StepDynamic  StepKind = "dynamic"
	StepAwait    StepKind = "await"
	StepEmit     StepKind = "emit"
)

// UnmarshalYAML decodes the `step` discriminator tag into Kind and then
// decodes the rest of the mapping into the shared struct (unused fields
// for a given kind simply stay zero).
func (c *ChainStep) UnmarshalYAML(node *yaml.Node) error {
	type rawStep struct {
		Step string `yaml:"step"`
		ID   string `yaml:"id"`
	}
	var raw rawStep
	if err := node.Decode(&raw); err != nil {
		return err
	}
	type alias ChainStep
	var a alias
	if err := node.Decode(&a); err != nil {
		return err
	}
	*c = ChainStep(a)
	c.Kind = StepKind(raw.Step)
	c.ID = raw.ID
	return nil
}

// LoadOrchestrator parses an orchestrator YAML document.
func LoadOrchestrator(data []byte) (*Orchestrator, error) {
	var o Orchestrator
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, &ParseError{Fragment: string(data), Cause: err}
	}
	if err := structValidator.Struct(&o); err != nil {
		return nil, &ParseError{Fragment: o.ID, Cause: err}
	}
	return &o, nil
}

// LoadOrchestratorFile reads and parses an orchestrator YAML file.
func LoadOrchestratorFile(path string) (*Orchestrator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading orchestrator file %s: %w", path, err)
	}
	return LoadOrchestrator(data)
}

// ReferencedSpecs returns every spec ID reachable from the orchestrator's
// chain, in first-encountered order and de-duplicated: Call.Spec,
// Dynamic.Allowed, and Uses, walked recursively through every step kind
// that nests sub-steps (Parallel, Branch, Loop, ForEach, Try).
func (o *Orchestrator) ReferencedSpecs() []string {
	seen := map[string]bool{}
	var order []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		order = append(order, id)
	}
	for _, id := range o.Uses {
		add(id)
	}
	var walk func(steps []ChainStep)
	walk = func(steps []ChainStep) {
		for _, s := range steps {
			switch s.Kind {
			case StepCall:
				add(s.Spec)
			case StepParallel:
				walk(s.Branches)
			case StepBranch:
				walk(s.Then)
				walk(s.Else)
			case StepLoop:
				walk(s.Body)
			case StepForEach:
				walk(s.Body)
			case StepTry:
				walk(s.TrySteps)
				for _, cb := range s.Catch {
					walk(cb.Steps)
				}
				walk(s.Finally)
			case StepDynamic:
				for _, id := range s.Allowed {
					add(id)
				}
			}
		}
	}
	walk(o.Chain)
	return order
}

// ValidationIssue describes one problem found by Validate.
type ValidationIssue struct {
	Code     string
	Message  string
	Severity Severity
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Validate checks structural invariants of the chain: duplicate step IDs
// and, given a lookup of known specs' declared inputs, missing required
// inputs on Call steps. It does not check whether referenced specs exist;
// callers combine this with a spec registry (see internal/completeness).
func (o *Orchestrator) Validate(specInputs map[string][]string) []ValidationIssue {
	var issues []ValidationIssue
	seenIDs := map[string]bool{}
	var walk func(steps []ChainStep)
	walk = func(steps []ChainStep) {
		for _, s := range steps {
			if s.ID != "" {
				if seenIDs[s.ID] {
					issues = append(issues, ValidationIssue{
						Code:     "DuplicateStepID",
						Message:  fmt.Sprintf("step id %q is used more than once", s.ID),
						Severity: SeverityError,
					})
				}
				seenIDs[s.ID] = true
			}
			if s.Kind == StepCall {
				if required, ok := specInputs[s.Spec]; ok {
					for _, in := range required {
						if _, supplied := s.Inputs[in]; !supplied {
							issues = append(issues, ValidationIssue{
								Code:     "MissingRequiredInput",
								Message:  fmt.Sprintf("call to %q is missing required input %q", s.Spec, in),
								Severity: SeverityError,
							})
						}
					}
				}
			}
			switch s.Kind {
			case StepParallel:
				walk(s.Branches)
			case StepBranch:
				walk(s.Then)
				walk(s.Else)
			case StepLoop, StepForEach:
				walk(s.Body)
			case StepTry:
				walk(s.TrySteps)
				for _, cb := range s.Catch {
					walk(cb.Steps)
				}
				walk(s.Finally)
			}
		}
	}
	walk(o.Chain)
	return issues
}
