// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema implements the `imacs schema` command: print the spec
// YAML schema, or one named section of it.
package schema

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
)

// sections documents spec.yaml's top-level keys, mirroring the yaml tags on
// specmodel.Spec and specmodel.Variable.
var sections = map[string]string{
	"id": "string, required — the spec's stable identifier, used as the " +
		"provenance key and the default package/namespace name.",
	"description": "string, optional — human-readable summary.",
	"inputs": "list of variable declarations (name, type, elem_type, values, description). " +
		"type is one of bool, int, float, string, enum, list, object.",
	"outputs": "list of variable declarations, same shape as inputs — declares a " +
		"named-output spec instead of a single default output.",
	"rules": "list, required, at least one — each rule has an id, a priority, a " +
		"condition (structured variable/op/value triple or a free-form expression " +
		"string), and an output value or expression.",
	"default": "the output value to use when no rule's condition matches.",
	"scoping": "per-target-language namespace/package overrides (languages.go.package, " +
		"languages.go.module_path, languages.{csharp,java,python,rust,typescript}.value).",
}

var order = []string{"id", "description", "inputs", "outputs", "rules", "default", "scoping"}

// NewSchemaCmd creates the schema command.
func NewSchemaCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Schema,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			name := fg.Arg(0)
			if name == "" {
				for _, key := range order {
					fmt.Printf("%s: %s\n", key, sections[key])
				}
				return nil
			}
			doc, ok := sections[name]
			if !ok {
				return fmt.Errorf("unknown schema section %q", name)
			}
			fmt.Printf("%s: %s\n", name, doc)
			return nil
		},
	}).Build()
}
