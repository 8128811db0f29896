// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package exprlang

import "fmt"

// Parse compiles a CEL-like expression string into an AST. Grammar,
// precedence, and AST shape follow the original parser's variant set
// (Atom, Ident, Member{Attribute,Index,Fields,FunctionCall}, Arithmetic,
// Relation, Unary, And, Or, Ternary, List, Map) one-for-one, so every
// render-table entry keyed on an AST kind has exactly one matching parse
// path.
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return Expr{}, err
	}
	p := &parser{toks: toks}
	e, err := p.parseTernary()
	if err != nil {
		return Expr{}, err
	}
	if !p.at(tokEOF) {
		return Expr{}, fmt.Errorf("exprlang: unexpected token %q at position %d", p.cur().text, p.cur().pos)
	}
	return e, nil
}

// IsValid reports whether src parses without error.
func IsValid(src string) bool {
	_, err := Parse(src)
	return err == nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) at(k tokenKind) bool { return p.cur().kind == k }

func (p *parser) atPunct(s string) bool { return p.cur().kind == tokPunct && p.cur().text == s }

func (p *parser) atKeyword(s string) bool { return p.cur().kind == tokIdent && p.cur().text == s }

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expectPunct(s string) error {
	if !p.atPunct(s) {
		return fmt.Errorf("exprlang: expected %q, got %q at position %d", s, p.cur().text, p.cur().pos)
	}
	p.advance()
	return nil
}

func (p *parser) parseTernary() (Expr, error) {
	cond, err := p.parseOr()
	if err != nil {
		return Expr{}, err
	}
	if p.atPunct("?") {
		p.advance()
		then, err := p.parseTernary()
		if err != nil {
			return Expr{}, err
		}
		if err := p.expectPunct(":"); err != nil {
			return Expr{}, err
		}
		els, err := p.parseTernary()
		if err != nil {
			return Expr{}, err
		}
		t, e := cond, then
		return Expr{Kind: KindTernary, Cond: &t, Then: &e, Else: &els}, nil
	}
	return cond, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return Expr{}, err
	}
	for p.atPunct("||") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return Expr{}, err
		}
		l, r := left, right
		left = Expr{Kind: KindOr, Left: &l, Right: &r}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseRelation()
	if err != nil {
		return Expr{}, err
	}
	for p.atPunct("&&") {
		p.advance()
		right, err := p.parseRelation()
		if err != nil {
			return Expr{}, err
		}
		l, r := left, right
		left = Expr{Kind: KindAnd, Left: &l, Right: &r}
	}
	return left, nil
}

var relPuncts = map[string]BinOp{
	"==": OpEq, "!=": OpNe, "<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe,
}

func (p *parser) parseRelation() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return Expr{}, err
	}
	if op, ok := relPuncts[p.cur().text]; ok && p.at(tokPunct) {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return Expr{}, err
		}
		l, r := left, right
		return Expr{Kind: KindRelation, BinOp: op, LHS: &l, RHS: &r}, nil
	}
	if p.atKeyword("in") {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return Expr{}, err
		}
		l, r := left, right
		return Expr{Kind: KindRelation, BinOp: OpIn, LHS: &l, RHS: &r}, nil
	}
	return left, nil
}

var additivePuncts = map[string]BinOp{"+": OpAdd, "-": OpSub}
var multiplicativePuncts = map[string]BinOp{"*": OpMul, "/": OpDiv, "%": OpMod}

func (p *parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return Expr{}, err
	}
	for p.at(tokPunct) {
		op, ok := additivePuncts[p.cur().text]
		if !ok {
			break
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return Expr{}, err
		}
		l, r := left, right
		left = Expr{Kind: KindArithmetic, BinOp: op, LHS: &l, RHS: &r}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return Expr{}, err
	}
	for p.at(tokPunct) {
		op, ok := multiplicativePuncts[p.cur().text]
		if !ok {
			break
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return Expr{}, err
		}
		l, r := left, right
		left = Expr{Kind: KindArithmetic, BinOp: op, LHS: &l, RHS: &r}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.atPunct("!") {
		p.advance()
		if p.atPunct("!") {
			p.advance()
			inner, err := p.parseUnary()
			if err != nil {
				return Expr{}, err
			}
			return Expr{Kind: KindUnary, UnOp: UnDoubleNeg, Operand: &inner}, nil
		}
		inner, err := p.parseUnary()
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: KindUnary, UnOp: UnNot, Operand: &inner}, nil
	}
	if p.atPunct("-") {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: KindUnary, UnOp: UnNeg, Operand: &inner}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return Expr{}, err
	}
	for {
		switch {
		case p.atPunct("."):
			p.advance()
			if !p.at(tokIdent) {
				return Expr{}, fmt.Errorf("exprlang: expected identifier after '.' at position %d", p.cur().pos)
			}
			name := p.advance().text
			b := base
			attr := Expr{Kind: KindMember, MemberOp: MemberAttribute, Base: &b, Field: name}
			if p.atPunct("(") {
				args, err := p.parseArgList()
				if err != nil {
					return Expr{}, err
				}
				base = Expr{Kind: KindMember, MemberOp: MemberFunctionCall, Base: &attr, Args: args}
				continue
			}
			base = attr
		case p.atPunct("["):
			p.advance()
			idx, err := p.parseTernary()
			if err != nil {
				return Expr{}, err
			}
			if err := p.expectPunct("]"); err != nil {
				return Expr{}, err
			}
			b, i := base, idx
			base = Expr{Kind: KindMember, MemberOp: MemberIndex, Base: &b, Index: &i}
		case p.atPunct("(") && base.Kind == KindIdent:
			args, err := p.parseArgList()
			if err != nil {
				return Expr{}, err
			}
			ident := base
			base = Expr{Kind: KindMember, MemberOp: MemberFunctionCall, Base: &ident, Field: ident.Name, Args: args}
		case p.atPunct("{") && base.Kind == KindIdent:
			fields, names, err := p.parseFieldList()
			if err != nil {
				return Expr{}, err
			}
			b := base
			base = Expr{Kind: KindMember, MemberOp: MemberFields, Base: &b, Args: fields, FieldNames: names}
		default:
			return base, nil
		}
	}
}

func (p *parser) parseArgList() ([]Expr, error) {
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []Expr
	if !p.atPunct(")") {
		for {
			a, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseFieldList() ([]Expr, []string, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, nil, err
	}
	var vals []Expr
	var names []string
	if !p.atPunct("}") {
		for {
			if !p.at(tokIdent) {
				return nil, nil, fmt.Errorf("exprlang: expected field name at position %d", p.cur().pos)
			}
			name := p.advance().text
			if err := p.expectPunct(":"); err != nil {
				return nil, nil, err
			}
			v, err := p.parseTernary()
			if err != nil {
				return nil, nil, err
			}
			names = append(names, name)
			vals = append(vals, v)
			if p.atPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return nil, nil, err
	}
	return vals, names, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.cur()
	switch {
	case t.kind == tokInt:
		p.advance()
		v, err := parseIntLiteral(t.text)
		if err != nil {
			return Expr{}, err
		}
		return IntLit(v), nil
	case t.kind == tokUInt:
		p.advance()
		v, err := parseUIntLiteral(t.text)
		if err != nil {
			return Expr{}, err
		}
		return Expr{Kind: KindAtom, Atom: AtomValue{Kind: AtomUInt, U: v}}, nil
	case t.kind == tokFloat:
		p.advance()
		var f float64
		if _, err := fmt.Sscanf(t.text, "%g", &f); err != nil {
			return Expr{}, err
		}
		return FloatLit(f), nil
	case t.kind == tokString:
		p.advance()
		return StringLit(t.text), nil
	case t.kind == tokIdent:
		switch t.text {
		case "true":
			p.advance()
			return BoolLit(true), nil
		case "false":
			p.advance()
			return BoolLit(false), nil
		case "null":
			p.advance()
			return NullLit(), nil
		default:
			p.advance()
			return Ident(t.text), nil
		}
	case t.kind == tokPunct && t.text == "(":
		p.advance()
		e, err := p.parseTernary()
		if err != nil {
			return Expr{}, err
		}
		if err := p.expectPunct(")"); err != nil {
			return Expr{}, err
		}
		return e, nil
	case t.kind == tokPunct && t.text == "[":
		p.advance()
		var items []Expr
		if !p.atPunct("]") {
			for {
				it, err := p.parseTernary()
				if err != nil {
					return Expr{}, err
				}
				items = append(items, it)
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		if err := p.expectPunct("]"); err != nil {
			return Expr{}, err
		}
		return Expr{Kind: KindList, Items: items}, nil
	case t.kind == tokPunct && t.text == "{":
		p.advance()
		var entries []MapEntry
		if !p.atPunct("}") {
			for {
				k, err := p.parseTernary()
				if err != nil {
					return Expr{}, err
				}
				if err := p.expectPunct(":"); err != nil {
					return Expr{}, err
				}
				v, err := p.parseTernary()
				if err != nil {
					return Expr{}, err
				}
				entries = append(entries, MapEntry{Key: k, Value: v})
				if p.atPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		if err := p.expectPunct("}"); err != nil {
			return Expr{}, err
		}
		return Expr{Kind: KindMap, Entries: entries}, nil
	default:
		return Expr{}, fmt.Errorf("exprlang: unexpected token %q at position %d", t.text, t.pos)
	}
}
