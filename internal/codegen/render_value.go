// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"fmt"
	"strings"

	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

// looksLikeExpression applies the literal-vs-expression heuristic to a rule
// output's string payload: an operator, a dotted path, function-call
// parentheses, or an exact match against a declared input name all signal
// that the string is a computed expression rather than a literal to quote
// as-is.
func looksLikeExpression(s string, inputNames []string) bool {
	for _, name := range inputNames {
		if s == name {
			return true
		}
	}
	if strings.ContainsAny(s, "+-*/%<>!=&|") {
		return true
	}
	if strings.Contains(s, ".") {
		return true
	}
	if strings.Contains(s, "(") && strings.Contains(s, ")") {
		return true
	}
	return false
}

// renderValue renders a ConditionValue to target's source syntax: bool/int/
// float values render as native literals in every target; string values are
// either quoted literals or, per looksLikeExpression, compiled as an
// expression via internal/exprlang.
func renderValue(v specmodel.ConditionValue, inputNames []string, target exprlang.Target) string {
	switch v.Kind {
	case specmodel.ValBool:
		return renderBoolLiteral(v.Bool, target)
	case specmodel.ValInt:
		return fmt.Sprintf("%d", v.Int)
	case specmodel.ValFloat:
		return fmt.Sprintf("%g", v.Float)
	case specmodel.ValString:
		if looksLikeExpression(v.Str, inputNames) {
			if compiled, err := exprlang.Compile(v.Str, target); err == nil {
				return compiled
			}
		}
		return quoteString(v.Str, target)
	default:
		return quoteString(v.String(), target)
	}
}

func renderBoolLiteral(b bool, target exprlang.Target) string {
	switch target {
	case exprlang.Python:
		if b {
			return "True"
		}
		return "False"
	default:
		if b {
			return "true"
		}
		return "false"
	}
}

func quoteString(s string, target exprlang.Target) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
