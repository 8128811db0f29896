// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package specmodel

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var structValidator = validator.New()

// Load parses a spec YAML document and validates required struct fields.
// It does not perform semantic validation (that is internal/completeness's
// job) — only the shape checks expressible as struct tags.
func Load(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{Fragment: string(data), Cause: err}
	}
	if err := structValidator.Struct(&s); err != nil {
		return nil, &ParseError{Fragment: s.ID, Cause: err}
	}
	return &s, nil
}

// LoadFile reads and parses a spec YAML file from disk.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file %s: %w", path, err)
	}
	return Load(data)
}

// ParseError reports a spec document that failed to parse or validate,
// carrying the offending fragment for caller-side pointing.
type ParseError struct {
	Fragment string
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("spec parse error: %v", e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// LooksLikeOrchestrator applies the same string-search heuristic as the
// CLI dispatcher: a document is treated as an orchestrator if it contains
// a top-level `chain:` or `uses:` key, checked before YAML parsing so the
// dispatcher can route to the right loader without a full parse.
func LooksLikeOrchestrator(data []byte) bool {
	text := "\n" + string(data)
	return strings.Contains(text, "\nchain:") || strings.Contains(text, "\nuses:")
}

// MarshalYAML implements yaml.Marshaler for ConditionValue, rendering it
// back to the scalar or map form it was parsed from.
func (v ConditionValue) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case ValBool:
		return v.Bool, nil
	case ValInt:
		return v.Int, nil
	case ValFloat:
		return v.Float, nil
	case ValString:
		return v.Str, nil
	case ValMap:
		out := make(map[string]interface{}, len(v.Map))
		for k, mv := range v.Map {
			rendered, err := mv.MarshalYAML()
			if err != nil {
				return nil, err
			}
			out[k] = rendered
		}
		return out, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for ConditionValue, accepting
// whichever scalar or mapping shape the node holds.
func (v *ConditionValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return v.fromScalar(node)
	case yaml.MappingNode:
		m := make(map[string]ConditionValue, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			var cv ConditionValue
			if err := node.Content[i+1].Decode(&cv); err != nil {
				return err
			}
			m[key] = cv
		}
		v.Kind = ValMap
		v.Map = m
		return nil
	default:
		return fmt.Errorf("unsupported condition value node kind %v", node.Kind)
	}
}

func (v *ConditionValue) fromScalar(node *yaml.Node) error {
	switch node.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return err
		}
		v.Kind, v.Bool = ValBool, b
		return nil
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return err
		}
		v.Kind, v.Int = ValInt, i
		return nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return err
		}
		v.Kind, v.Float = ValFloat, f
		return nil
	default:
		v.Kind, v.Str = ValString, node.Value
		return nil
	}
}

// MarshalYAML implements yaml.Marshaler for Output.
func (o Output) MarshalYAML() (interface{}, error) {
	if o.IsMap || o.Named != nil {
		out := make(map[string]interface{}, len(o.Named))
		for k, v := range o.Named {
			rendered, err := v.MarshalYAML()
			if err != nil {
				return nil, err
			}
			out[k] = rendered
		}
		return out, nil
	}
	return o.Single.MarshalYAML()
}

// UnmarshalYAML implements yaml.Unmarshaler for Output: a mapping node
// becomes a Named output, any scalar becomes a Single value/expression.
func (o *Output) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		m := make(map[string]ConditionValue, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			var cv ConditionValue
			if err := node.Content[i+1].Decode(&cv); err != nil {
				return err
			}
			m[key] = cv
		}
		o.IsMap = true
		o.Named = m
		return nil
	}
	var cv ConditionValue
	if err := node.Decode(&cv); err != nil {
		return err
	}
	o.Single = cv
	return nil
}
