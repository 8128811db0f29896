// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package sexp implements the `imacs sexp` command: parse a single
// condition/output expression and print its AST as an s-expression.
package sexp

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
)

// NewSexpCmd creates the sexp command.
func NewSexpCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Sexp,
		Args:    cobra.ExactArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			expr, err := exprlang.Parse(fg.Arg(0))
			if err != nil {
				return fmt.Errorf("parsing expression: %w", err)
			}
			fmt.Println(sexpString(&expr))
			return nil
		},
	}).Build()
}

// sexpString renders e as a fully parenthesized s-expression, the same
// shape regardless of which of Expr's kind-specific fields is populated.
func sexpString(e *exprlang.Expr) string {
	if e == nil {
		return "()"
	}
	switch e.Kind {
	case exprlang.KindAtom:
		return atomSexp(e.Atom)
	case exprlang.KindIdent:
		return e.Name
	case exprlang.KindMember:
		return memberSexp(e)
	case exprlang.KindArithmetic, exprlang.KindRelation:
		return fmt.Sprintf("(%s %s %s)", e.BinOp, sexpString(e.LHS), sexpString(e.RHS))
	case exprlang.KindUnary:
		return fmt.Sprintf("(%s %s)", e.UnOp, sexpString(e.Operand))
	case exprlang.KindAnd:
		return fmt.Sprintf("(and %s %s)", sexpString(e.Left), sexpString(e.Right))
	case exprlang.KindOr:
		return fmt.Sprintf("(or %s %s)", sexpString(e.Left), sexpString(e.Right))
	case exprlang.KindTernary:
		return fmt.Sprintf("(if %s %s %s)", sexpString(e.Cond), sexpString(e.Then), sexpString(e.Else))
	case exprlang.KindList:
		items := make([]string, len(e.Items))
		for i := range e.Items {
			items[i] = sexpString(&e.Items[i])
		}
		return fmt.Sprintf("(list %s)", strings.Join(items, " "))
	case exprlang.KindMap:
		entries := make([]string, len(e.Entries))
		for i, kv := range e.Entries {
			entries[i] = fmt.Sprintf("(%s . %s)", sexpString(&kv.Key), sexpString(&kv.Value))
		}
		return fmt.Sprintf("(map %s)", strings.Join(entries, " "))
	default:
		return fmt.Sprintf("(unknown %s)", e.Kind)
	}
}

func atomSexp(a exprlang.AtomValue) string {
	switch a.Kind {
	case exprlang.AtomInt:
		return fmt.Sprintf("%d", a.I)
	case exprlang.AtomFloat:
		return fmt.Sprintf("%g", a.F)
	case exprlang.AtomString:
		return fmt.Sprintf("%q", a.S)
	case exprlang.AtomUInt:
		return fmt.Sprintf("%d", a.U)
	case exprlang.AtomBool:
		return fmt.Sprintf("%t", a.B)
	case exprlang.AtomNull:
		return "null"
	case exprlang.AtomBytes:
		return fmt.Sprintf("%q", a.S)
	default:
		return "?"
	}
}

func memberSexp(e *exprlang.Expr) string {
	switch e.MemberOp {
	case exprlang.MemberAttribute:
		return fmt.Sprintf("(. %s %s)", sexpString(e.Base), e.Field)
	case exprlang.MemberIndex:
		return fmt.Sprintf("(index %s %s)", sexpString(e.Base), sexpString(e.Index))
	case exprlang.MemberFunctionCall:
		args := make([]string, len(e.Args))
		for i := range e.Args {
			args[i] = sexpString(&e.Args[i])
		}
		return fmt.Sprintf("(call %s %s)", e.Field, strings.Join(args, " "))
	case exprlang.MemberFields:
		parts := make([]string, len(e.FieldNames))
		for i, name := range e.FieldNames {
			parts[i] = fmt.Sprintf("(%s %s)", name, sexpString(&e.Args[i]))
		}
		return fmt.Sprintf("(fields %s)", strings.Join(parts, " "))
	default:
		return fmt.Sprintf("(member %s)", sexpString(e.Base))
	}
}
