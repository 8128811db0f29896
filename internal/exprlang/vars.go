// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package exprlang

import (
	"fmt"
	"sort"
)

// ExtractVariables returns every variable name referenced in src, sorted
// and de-duplicated. Only the base identifier of a member chain is
// collected (e.g. "user" from "user.account.verified"), matching the
// decision-table use case where variables are always top-level inputs.
func ExtractVariables(src string) ([]string, error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, err
	}
	var vars []string
	collectVariables(&ast, &vars)
	sort.Strings(vars)
	return dedupSorted(vars), nil
}

func dedupSorted(in []string) []string {
	out := in[:0]
	var prev string
	for i, v := range in {
		if i == 0 || v != prev {
			out = append(out, v)
		}
		prev = v
	}
	return out
}

func collectVariables(e *Expr, vars *[]string) {
	switch e.Kind {
	case KindIdent:
		*vars = append(*vars, e.Name)
	case KindMember:
		switch {
		case e.MemberOp == MemberFunctionCall && e.Base.Kind == KindIdent && e.Field == e.Base.Name:
			// a global call such as size(items): the identifier names the function
		case e.Base.Kind == KindIdent:
			*vars = append(*vars, e.Base.Name)
		default:
			collectVariables(e.Base, vars)
		}
		if e.MemberOp == MemberIndex {
			collectVariables(e.Index, vars)
		}
		for i := range e.Args {
			collectVariables(&e.Args[i], vars)
		}
	case KindArithmetic:
		collectVariables(e.LHS, vars)
		collectVariables(e.RHS, vars)
	case KindRelation:
		collectVariables(e.LHS, vars)
		collectVariables(e.RHS, vars)
	case KindUnary:
		collectVariables(e.Operand, vars)
	case KindAnd, KindOr:
		collectVariables(e.Left, vars)
		collectVariables(e.Right, vars)
	case KindTernary:
		collectVariables(e.Cond, vars)
		collectVariables(e.Then, vars)
		collectVariables(e.Else, vars)
	case KindList:
		for i := range e.Items {
			collectVariables(&e.Items[i], vars)
		}
	case KindMap:
		for _, ent := range e.Entries {
			collectVariables(&ent.Key, vars)
			collectVariables(&ent.Value, vars)
		}
	case KindAtom:
		// literals reference no variables
	}
}

// ValidateVariables checks that every variable referenced in src appears
// in validNames, returning an error naming the first undefined reference.
func ValidateVariables(src string, validNames []string) error {
	referenced, err := ExtractVariables(src)
	if err != nil {
		return err
	}
	valid := make(map[string]bool, len(validNames))
	for _, n := range validNames {
		valid[n] = true
	}
	for _, v := range referenced {
		if !valid[v] {
			return fmt.Errorf("exprlang: undefined variable %q in expression: %s", v, src)
		}
	}
	return nil
}
