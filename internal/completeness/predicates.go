// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package completeness lifts decision-table rules into a Boolean cover over
// a predicate alphabet, then uses internal/boolcover and internal/minimize
// to answer coverage, overlap, dead-rule, tautology, and cross-spec
// consistency questions.
package completeness

import (
	"fmt"
	"sort"

	"github.com/outboundlabs/imacs/internal/boolcover"
	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

// Alphabet maps canonical predicate strings to a stable Boolean-variable
// index, the shared coordinate system every rule's cube is encoded against.
type Alphabet struct {
	order []string
	index map[string]int
}

// NewAlphabet creates an empty alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{index: map[string]int{}}
}

// Intern returns the index of pred, assigning it the next index if unseen.
func (a *Alphabet) Intern(pred string) int {
	if i, ok := a.index[pred]; ok {
		return i
	}
	i := len(a.order)
	a.order = append(a.order, pred)
	a.index[pred] = i
	return i
}

// Len is the number of distinct predicates interned so far.
func (a *Alphabet) Len() int { return len(a.order) }

// Predicate returns the canonical string for variable index i.
func (a *Alphabet) Predicate(i int) string { return a.order[i] }

// literal is one signed occurrence of a predicate within a DNF clause.
type literal struct {
	predicate string
	negated   bool
}

// clause is a conjunction of literals — one cube's worth of constraints.
type clause []literal

// ruleClauses holds the DNF expansion of one rule's condition: each element
// is one disjunct (clause), ORed together to form the rule's full region.
type ruleClauses struct {
	RuleID   string
	Priority int
	When     string
	Clauses  []clause
}

// ExtractRuleClauses parses rule's condition and expands it to disjunctive
// normal form, interning every atomic predicate encountered into alphabet.
// Parse or expansion failures degrade to a single opaque literal named after
// the raw expression text, so an unusual condition still occupies one
// Boolean dimension rather than aborting the whole analysis.
func ExtractRuleClauses(rule specmodel.Rule, alphabet *Alphabet) ruleClauses {
	src := rule.AsCEL()
	rc := ruleClauses{RuleID: rule.ID, Priority: rule.Priority, When: src}

	expr, err := exprlang.Parse(src)
	if err != nil {
		alphabet.Intern(src)
		rc.Clauses = []clause{{{predicate: src}}}
		return rc
	}

	dnf := expandDNF(expr)
	for _, c := range dnf {
		for _, lit := range c {
			alphabet.Intern(lit.predicate)
		}
	}
	rc.Clauses = dnf
	return rc
}

// expandDNF recursively expands e into disjunctive normal form: a slice of
// clauses, each a conjunction of signed atomic predicates. And distributes
// over the cross product of its operands' clause sets; Or concatenates;
// De Morgan's laws push Not through a nested And/Or; anything else
// (comparisons, member access, ternary, literals) is an opaque atom.
func expandDNF(e exprlang.Expr) []clause {
	switch e.Kind {
	case exprlang.KindAnd:
		left := expandDNF(*e.Left)
		right := expandDNF(*e.Right)
		var out []clause
		for _, l := range left {
			for _, r := range right {
				combined := make(clause, 0, len(l)+len(r))
				combined = append(combined, l...)
				combined = append(combined, r...)
				out = append(out, combined)
			}
		}
		return out
	case exprlang.KindOr:
		return append(expandDNF(*e.Left), expandDNF(*e.Right)...)
	case exprlang.KindUnary:
		if e.UnOp == exprlang.UnNot {
			return expandDNF(negate(*e.Operand))
		}
		return atomClause(e)
	default:
		return atomClause(e)
	}
}

// negate applies De Morgan's laws to push a logical Not through And/Or/Not,
// returning an expression tree with the negation distributed to the leaves.
func negate(e exprlang.Expr) exprlang.Expr {
	switch e.Kind {
	case exprlang.KindAnd:
		l, r := negate(*e.Left), negate(*e.Right)
		return exprlang.Expr{Kind: exprlang.KindOr, Left: &l, Right: &r}
	case exprlang.KindOr:
		l, r := negate(*e.Left), negate(*e.Right)
		return exprlang.Expr{Kind: exprlang.KindAnd, Left: &l, Right: &r}
	case exprlang.KindUnary:
		if e.UnOp == exprlang.UnNot {
			return *e.Operand
		}
		return negated(e)
	case exprlang.KindRelation:
		if inv, ok := invertRelation(e.BinOp); ok {
			neg := e
			neg.BinOp = inv
			return neg
		}
		return negated(e)
	default:
		return negated(e)
	}
}

func negated(e exprlang.Expr) exprlang.Expr {
	return exprlang.Expr{Kind: exprlang.KindUnary, UnOp: exprlang.UnNot, Operand: &e}
}

func invertRelation(op exprlang.BinOp) (exprlang.BinOp, bool) {
	switch op {
	case exprlang.OpEq:
		return exprlang.OpNe, true
	case exprlang.OpNe:
		return exprlang.OpEq, true
	case exprlang.OpLt:
		return exprlang.OpGe, true
	case exprlang.OpLe:
		return exprlang.OpGt, true
	case exprlang.OpGt:
		return exprlang.OpLe, true
	case exprlang.OpGe:
		return exprlang.OpLt, true
	default:
		return "", false
	}
}

// atomClause wraps e as a single-literal clause, recognizing the bare-Not
// case (predicate negated) and canonicalizing everything else by its
// rendered source text.
func atomClause(e exprlang.Expr) []clause {
	if e.Kind == exprlang.KindUnary && e.UnOp == exprlang.UnNot {
		return []clause{{{predicate: canonical(*e.Operand), negated: true}}}
	}
	return []clause{{{predicate: canonical(e)}}}
}

// canonical renders e to a single stable textual form used as the
// predicate's identity. Go is used as the canonicalization target
// arbitrarily — any one of the six is a valid stable key, and Go's rendering
// never needs per-target adjustment for the flat comparison/ident shapes
// predicates are built from.
func canonical(e exprlang.Expr) string {
	return exprlang.Render(&e, exprlang.Go)
}

// EncodeCube builds one cube per clause of rc over alphabet, with every
// predicate not mentioned in the clause left don't-care and output column 0
// always active (the cube simply marks "this disjunct of this rule fires").
func EncodeCube(rc ruleClauses, alphabet *Alphabet) []boolcover.Cube {
	cubes := make([]boolcover.Cube, 0, len(rc.Clauses))
	for _, c := range rc.Clauses {
		cube := boolcover.NewCube(alphabet.Len(), 1)
		cube.SetOutput(0, boolcover.One)
		for _, lit := range c {
			idx := alphabet.Intern(lit.predicate)
			if lit.negated {
				cube.SetInput(idx, boolcover.Zero)
			} else {
				cube.SetInput(idx, boolcover.One)
			}
		}
		cubes = append(cubes, cube)
	}
	return cubes
}

// DescribeCube renders cube back to a human-readable conjunction of
// predicates from alphabet, for reporting missing cases and overlaps.
func DescribeCube(cube boolcover.Cube, alphabet *Alphabet) string {
	var parts []string
	for i := 0; i < cube.NumInputs(); i++ {
		switch cube.Input(i) {
		case boolcover.One:
			parts = append(parts, alphabet.Predicate(i))
		case boolcover.Zero:
			parts = append(parts, fmt.Sprintf("!(%s)", alphabet.Predicate(i)))
		}
	}
	if len(parts) == 0 {
		return "true"
	}
	sort.Strings(parts)
	out := parts[0]
	for _, p := range parts[1:] {
		out += " && " + p
	}
	return out
}
