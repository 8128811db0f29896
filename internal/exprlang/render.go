// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package exprlang

import (
	"fmt"
	"strconv"
	"strings"
)

// Compile parses src and renders it as target-language source text in one
// step, the common case for condition codegen.
func Compile(src string, target Target) (string, error) {
	ast, err := Parse(src)
	if err != nil {
		return "", err
	}
	return Render(&ast, target), nil
}

// Render renders an AST node to target-language source text. The
// dispatch is two-dimensional (AST kind x target): every kind below
// switches again on target wherever the target languages disagree on
// operator spelling, literal form, or call convention.
func Render(e *Expr, target Target) string {
	switch e.Kind {
	case KindAtom:
		return renderAtom(e.Atom, target)

	case KindIdent:
		return e.Name

	case KindMember:
		return renderMember(e, target)

	case KindArithmetic:
		l := Render(e.LHS, target)
		r := Render(e.RHS, target)
		return fmt.Sprintf("(%s %s %s)", l, string(e.BinOp), r)

	case KindRelation:
		return renderRelation(e, target)

	case KindUnary:
		inner := Render(e.Operand, target)
		switch e.UnOp {
		case UnNot:
			if target == Python {
				return fmt.Sprintf("(not %s)", inner)
			}
			return fmt.Sprintf("(!%s)", inner)
		case UnDoubleNeg:
			return fmt.Sprintf("(!!%s)", inner)
		case UnNeg:
			return fmt.Sprintf("(-%s)", inner)
		}
		return inner

	case KindAnd:
		l := Render(e.Left, target)
		r := Render(e.Right, target)
		if target == Python {
			return fmt.Sprintf("(%s and %s)", l, r)
		}
		return fmt.Sprintf("(%s && %s)", l, r)

	case KindOr:
		l := Render(e.Left, target)
		r := Render(e.Right, target)
		if target == Python {
			return fmt.Sprintf("(%s or %s)", l, r)
		}
		return fmt.Sprintf("(%s || %s)", l, r)

	case KindTernary:
		c := Render(e.Cond, target)
		t := Render(e.Then, target)
		f := Render(e.Else, target)
		if target == Python {
			return fmt.Sprintf("(%s if %s else %s)", t, c, f)
		}
		return fmt.Sprintf("(%s ? %s : %s)", c, t, f)

	case KindList:
		parts := make([]string, len(e.Items))
		for i := range e.Items {
			parts[i] = Render(&e.Items[i], target)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))

	case KindMap:
		parts := make([]string, len(e.Entries))
		for i, ent := range e.Entries {
			parts[i] = fmt.Sprintf("%s: %s", Render(&ent.Key, target), Render(&ent.Value, target))
		}
		if target == Rust {
			return fmt.Sprintf("HashMap::from([%s])", strings.Join(parts, ", "))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	}
	return ""
}

func renderAtom(a AtomValue, target Target) string {
	switch a.Kind {
	case AtomInt:
		return strconv.FormatInt(a.I, 10)
	case AtomUInt:
		return strconv.FormatUint(a.U, 10)
	case AtomFloat:
		s := strconv.FormatFloat(a.F, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case AtomString:
		return strconv.Quote(a.S)
	case AtomBytes:
		return strconv.Quote(a.S)
	case AtomBool:
		if target == Python {
			if a.B {
				return "True"
			}
			return "False"
		}
		return strconv.FormatBool(a.B)
	case AtomNull:
		switch target {
		case Python:
			return "None"
		case Rust:
			return "None"
		default:
			return "null"
		}
	}
	return ""
}

func renderMember(e *Expr, target Target) string {
	switch e.MemberOp {
	case MemberFunctionCall:
		if e.Base.Kind == KindIdent {
			if rendered, ok := renderBuiltinCall(e.Field, e.Args, target); ok {
				return rendered
			}
		}
		base := Render(e.Base, target)
		args := make([]string, len(e.Args))
		for i := range e.Args {
			args[i] = Render(&e.Args[i], target)
		}
		return fmt.Sprintf("%s(%s)", base, strings.Join(args, ", "))

	case MemberAttribute:
		base := Render(e.Base, target)
		return fmt.Sprintf("%s.%s", base, e.Field)

	case MemberIndex:
		base := Render(e.Base, target)
		idx := Render(e.Index, target)
		return fmt.Sprintf("%s[%s]", base, idx)

	case MemberFields:
		base := Render(e.Base, target)
		parts := make([]string, len(e.Args))
		for i, name := range e.FieldNames {
			parts[i] = fmt.Sprintf("%s: %s", name, Render(&e.Args[i], target))
		}
		return fmt.Sprintf("%s { %s }", base, strings.Join(parts, ", "))
	}
	return ""
}

func renderRelation(e *Expr, target Target) string {
	l := Render(e.LHS, target)
	r := Render(e.RHS, target)
	if e.BinOp == OpIn {
		switch target {
		case Rust:
			return fmt.Sprintf("[%s].contains(&%s)", r, l)
		case TypeScript:
			return fmt.Sprintf("%s.includes(%s)", r, l)
		case Python:
			return fmt.Sprintf("(%s in %s)", l, r)
		case CSharp, Java:
			return fmt.Sprintf("%s.contains(%s)", r, l)
		case Go:
			return fmt.Sprintf("contains(%s, %s)", r, l)
		}
	}
	op := relationOp(e.BinOp, target)
	return fmt.Sprintf("(%s %s %s)", l, op, r)
}

func relationOp(op BinOp, target Target) string {
	switch op {
	case OpEq:
		if target == TypeScript {
			return "==="
		}
		return "=="
	case OpNe:
		if target == TypeScript {
			return "!=="
		}
		return "!="
	default:
		return string(op)
	}
}

// renderBuiltinCall renders the fixed built-in function table
// (size/has/type/contains/startsWith/endsWith/matches/int/double/float/
// string) per target. Anything outside the table falls through to a
// plain function-call rendering, ok=false signals "not a built-in".
func renderBuiltinCall(name string, rawArgs []Expr, target Target) (string, bool) {
	args := make([]string, len(rawArgs))
	for i := range rawArgs {
		args[i] = Render(&rawArgs[i], target)
	}
	a0 := ""
	if len(args) > 0 {
		a0 = args[0]
	}
	switch name {
	case "size":
		switch target {
		case Rust:
			return a0 + ".len()", true
		case TypeScript:
			return a0 + ".length", true
		case Python:
			return fmt.Sprintf("len(%s)", a0), true
		case CSharp, Java:
			return a0 + ".size()", true
		case Go:
			return fmt.Sprintf("len(%s)", a0), true
		}
	case "has":
		switch target {
		case Rust:
			return a0 + ".is_some()", true
		case TypeScript:
			return fmt.Sprintf("(%s !== undefined)", a0), true
		case Python:
			return fmt.Sprintf("(%s is not None)", a0), true
		case CSharp, Java:
			return fmt.Sprintf("(%s != null)", a0), true
		case Go:
			return fmt.Sprintf("(%s != nil)", a0), true
		}
	case "type":
		switch target {
		case Rust:
			return fmt.Sprintf("type_of(%s)", a0), true
		case TypeScript:
			return "typeof " + a0, true
		case Python:
			return fmt.Sprintf("type(%s)", a0), true
		case CSharp:
			return a0 + ".GetType()", true
		case Java:
			return a0 + ".getClass()", true
		case Go:
			return fmt.Sprintf("reflect.TypeOf(%s)", a0), true
		}
	case "contains":
		if len(args) >= 2 {
			return fmt.Sprintf("%s.contains(%s)", args[0], args[1]), true
		}
	case "startsWith":
		if len(args) < 2 {
			break
		}
		switch target {
		case Rust:
			return fmt.Sprintf("%s.starts_with(%s)", args[0], args[1]), true
		case Python:
			return fmt.Sprintf("%s.startswith(%s)", args[0], args[1]), true
		case TypeScript, CSharp, Java:
			return fmt.Sprintf("%s.startsWith(%s)", args[0], args[1]), true
		case Go:
			return fmt.Sprintf("strings.HasPrefix(%s, %s)", args[0], args[1]), true
		}
	case "endsWith":
		if len(args) < 2 {
			break
		}
		switch target {
		case Rust:
			return fmt.Sprintf("%s.ends_with(%s)", args[0], args[1]), true
		case Python:
			return fmt.Sprintf("%s.endswith(%s)", args[0], args[1]), true
		case TypeScript, CSharp, Java:
			return fmt.Sprintf("%s.endsWith(%s)", args[0], args[1]), true
		case Go:
			return fmt.Sprintf("strings.HasSuffix(%s, %s)", args[0], args[1]), true
		}
	case "matches":
		if len(args) < 2 {
			break
		}
		switch target {
		case Rust:
			return fmt.Sprintf("Regex::new(%s).unwrap().is_match(%s)", args[1], args[0]), true
		case Python:
			return fmt.Sprintf("re.match(%s, %s)", args[1], args[0]), true
		case TypeScript:
			return fmt.Sprintf("%s.match(%s)", args[0], args[1]), true
		case CSharp:
			return fmt.Sprintf("Regex.IsMatch(%s, %s)", args[0], args[1]), true
		case Java:
			return fmt.Sprintf("%s.matches(%s)", args[0], args[1]), true
		case Go:
			return fmt.Sprintf("regexp.MatchString(%s, %s)", args[1], args[0]), true
		}
	case "int":
		switch target {
		case Rust:
			return a0 + " as i64", true
		case TypeScript:
			return fmt.Sprintf("parseInt(%s)", a0), true
		case Python:
			return fmt.Sprintf("int(%s)", a0), true
		case CSharp, Java:
			return "(long)" + a0, true
		case Go:
			return fmt.Sprintf("int64(%s)", a0), true
		}
	case "double", "float":
		switch target {
		case Rust:
			return a0 + " as f64", true
		case TypeScript:
			return fmt.Sprintf("parseFloat(%s)", a0), true
		case Python:
			return fmt.Sprintf("float(%s)", a0), true
		case CSharp, Java:
			return "(double)" + a0, true
		case Go:
			return fmt.Sprintf("float64(%s)", a0), true
		}
	case "string":
		switch target {
		case Rust:
			return a0 + ".to_string()", true
		case TypeScript:
			return fmt.Sprintf("String(%s)", a0), true
		case Python:
			return fmt.Sprintf("str(%s)", a0), true
		case CSharp, Java:
			return a0 + ".toString()", true
		case Go:
			return fmt.Sprintf("fmt.Sprintf(\"%%v\", %s)", a0), true
		}
	}
	return "", false
}

// RenderAll renders list.all(x, predicate) comprehensions per target.
func RenderAll(list, v string, predicate *Expr, target Target) string {
	pred := Render(predicate, target)
	switch target {
	case Rust:
		return fmt.Sprintf("%s.iter().all(|%s| %s)", list, v, pred)
	case TypeScript:
		return fmt.Sprintf("%s.every(%s => %s)", list, v, pred)
	case Python:
		return fmt.Sprintf("all(%s for %s in %s)", pred, v, list)
	case CSharp:
		return fmt.Sprintf("%s.All(%s => %s)", list, v, pred)
	case Java:
		return fmt.Sprintf("%s.stream().allMatch(%s -> %s)", list, v, pred)
	default:
		return fmt.Sprintf("all(%s, func(%s T) bool { return %s })", list, v, pred)
	}
}

// RenderExists renders list.exists(x, predicate) comprehensions per target.
func RenderExists(list, v string, predicate *Expr, target Target) string {
	pred := Render(predicate, target)
	switch target {
	case Rust:
		return fmt.Sprintf("%s.iter().any(|%s| %s)", list, v, pred)
	case TypeScript:
		return fmt.Sprintf("%s.some(%s => %s)", list, v, pred)
	case Python:
		return fmt.Sprintf("any(%s for %s in %s)", pred, v, list)
	case CSharp:
		return fmt.Sprintf("%s.Any(%s => %s)", list, v, pred)
	case Java:
		return fmt.Sprintf("%s.stream().anyMatch(%s -> %s)", list, v, pred)
	default:
		return fmt.Sprintf("any(%s, func(%s T) bool { return %s })", list, v, pred)
	}
}

// RenderMap renders list.map(x, transform) comprehensions per target.
func RenderMap(list, v string, transform *Expr, target Target) string {
	t := Render(transform, target)
	switch target {
	case Rust:
		return fmt.Sprintf("%s.iter().map(|%s| %s).collect::<Vec<_>>()", list, v, t)
	case TypeScript:
		return fmt.Sprintf("%s.map(%s => %s)", list, v, t)
	case Python:
		return fmt.Sprintf("[%s for %s in %s]", t, v, list)
	case CSharp:
		return fmt.Sprintf("%s.Select(%s => %s).ToList()", list, v, t)
	case Java:
		return fmt.Sprintf("%s.stream().map(%s -> %s).collect(Collectors.toList())", list, v, t)
	default:
		return fmt.Sprintf("mapSlice(%s, func(%s T) R { return %s })", list, v, t)
	}
}

// RenderFilter renders list.filter(x, predicate) comprehensions per target.
func RenderFilter(list, v string, predicate *Expr, target Target) string {
	pred := Render(predicate, target)
	switch target {
	case Rust:
		return fmt.Sprintf("%s.iter().filter(|%s| %s).collect::<Vec<_>>()", list, v, pred)
	case TypeScript:
		return fmt.Sprintf("%s.filter(%s => %s)", list, v, pred)
	case Python:
		return fmt.Sprintf("[%s for %s in %s if %s]", v, v, list, pred)
	case CSharp:
		return fmt.Sprintf("%s.Where(%s => %s).ToList()", list, v, pred)
	case Java:
		return fmt.Sprintf("%s.stream().filter(%s -> %s).collect(Collectors.toList())", list, v, pred)
	default:
		return fmt.Sprintf("filter(%s, func(%s T) bool { return %s })", list, v, pred)
	}
}
