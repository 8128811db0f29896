// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package exprlang

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Eval evaluates an expression string against variable bindings and
// returns its dynamic result. Values are represented with native Go
// types (bool, int64, uint64, float64, string, []any, map[string]any,
// nil) rather than a boxed Value type, since evaluation here only feeds
// spec validation and test generation — never generated output code.
func Eval(src string, vars map[string]any) (any, error) {
	ast, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return evalExpr(&ast, vars)
}

// EvalBool evaluates src and requires a bool result.
func EvalBool(src string, vars map[string]any) (bool, error) {
	v, err := Eval(src, vars)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("exprlang: expected bool result for %q, got %T", src, v)
	}
	return b, nil
}

// EvalInt evaluates src and requires an integer result.
func EvalInt(src string, vars map[string]any) (int64, error) {
	v, err := Eval(src, vars)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("exprlang: expected int result for %q, got %T", src, v)
	}
}

// EvalFloat evaluates src and requires a numeric result, widened to float64.
func EvalFloat(src string, vars map[string]any) (float64, error) {
	v, err := Eval(src, vars)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("exprlang: expected numeric result for %q, got %T", src, v)
	}
}

// EvalString evaluates src and requires a string result.
func EvalString(src string, vars map[string]any) (string, error) {
	v, err := Eval(src, vars)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("exprlang: expected string result for %q, got %T", src, v)
	}
	return s, nil
}

func evalExpr(e *Expr, vars map[string]any) (any, error) {
	switch e.Kind {
	case KindAtom:
		return evalAtom(e.Atom), nil

	case KindIdent:
		v, ok := vars[e.Name]
		if !ok {
			return nil, fmt.Errorf("exprlang: undefined variable %q", e.Name)
		}
		return v, nil

	case KindMember:
		return evalMember(e, vars)

	case KindArithmetic:
		l, err := evalExpr(e.LHS, vars)
		if err != nil {
			return nil, err
		}
		r, err := evalExpr(e.RHS, vars)
		if err != nil {
			return nil, err
		}
		return evalArithmetic(e.BinOp, l, r)

	case KindRelation:
		return evalRelation(e, vars)

	case KindUnary:
		v, err := evalExpr(e.Operand, vars)
		if err != nil {
			return nil, err
		}
		switch e.UnOp {
		case UnNot:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("exprlang: '!' requires bool operand, got %T", v)
			}
			return !b, nil
		case UnDoubleNeg:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("exprlang: '!!' requires bool operand, got %T", v)
			}
			return b, nil
		case UnNeg:
			return negate(v)
		}
		return nil, fmt.Errorf("exprlang: unknown unary operator %q", e.UnOp)

	case KindAnd:
		l, err := evalBoolOperand(e.Left, vars)
		if err != nil {
			return nil, err
		}
		if !l {
			return false, nil
		}
		return evalBoolOperand(e.Right, vars)

	case KindOr:
		l, err := evalBoolOperand(e.Left, vars)
		if err != nil {
			return nil, err
		}
		if l {
			return true, nil
		}
		return evalBoolOperand(e.Right, vars)

	case KindTernary:
		c, err := evalBoolOperand(e.Cond, vars)
		if err != nil {
			return nil, err
		}
		if c {
			return evalExpr(e.Then, vars)
		}
		return evalExpr(e.Else, vars)

	case KindList:
		out := make([]any, len(e.Items))
		for i := range e.Items {
			v, err := evalExpr(&e.Items[i], vars)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case KindMap:
		out := make(map[string]any, len(e.Entries))
		for _, ent := range e.Entries {
			k, err := evalExpr(&ent.Key, vars)
			if err != nil {
				return nil, err
			}
			v, err := evalExpr(&ent.Value, vars)
			if err != nil {
				return nil, err
			}
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("exprlang: map keys must be strings, got %T", k)
			}
			out[ks] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("exprlang: unknown expression kind %q", e.Kind)
}

func evalBoolOperand(e *Expr, vars map[string]any) (bool, error) {
	v, err := evalExpr(e, vars)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("exprlang: expected bool operand, got %T", v)
	}
	return b, nil
}

func evalAtom(a AtomValue) any {
	switch a.Kind {
	case AtomInt:
		return a.I
	case AtomUInt:
		return a.U
	case AtomFloat:
		return a.F
	case AtomString:
		return a.S
	case AtomBool:
		return a.B
	case AtomNull:
		return nil
	default:
		return nil
	}
}

func negate(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return -n, nil
	case float64:
		return -n, nil
	default:
		return nil, fmt.Errorf("exprlang: unary '-' requires numeric operand, got %T", v)
	}
}

func evalArithmetic(op BinOp, l, r any) (any, error) {
	lf, lIsFloat, err := toNumber(l)
	if err != nil {
		return nil, err
	}
	rf, rIsFloat, err := toNumber(r)
	if err != nil {
		return nil, err
	}
	if op == OpAdd {
		if ls, ok := l.(string); ok {
			rs, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("exprlang: cannot add string and %T", r)
			}
			return ls + rs, nil
		}
	}
	if lIsFloat || rIsFloat {
		switch op {
		case OpAdd:
			return lf + rf, nil
		case OpSub:
			return lf - rf, nil
		case OpMul:
			return lf * rf, nil
		case OpDiv:
			return lf / rf, nil
		}
		return nil, fmt.Errorf("exprlang: operator %q not supported for float operands", op)
	}
	li, ri := int64(lf), int64(rf)
	switch op {
	case OpAdd:
		return li + ri, nil
	case OpSub:
		return li - ri, nil
	case OpMul:
		return li * ri, nil
	case OpDiv:
		if ri == 0 {
			return nil, fmt.Errorf("exprlang: division by zero")
		}
		return li / ri, nil
	case OpMod:
		if ri == 0 {
			return nil, fmt.Errorf("exprlang: modulus by zero")
		}
		return li % ri, nil
	}
	return nil, fmt.Errorf("exprlang: unknown arithmetic operator %q", op)
}

func toNumber(v any) (float64, bool, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), false, nil
	case uint64:
		return float64(n), false, nil
	case float64:
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("exprlang: expected numeric operand, got %T", v)
	}
}

func evalRelation(e *Expr, vars map[string]any) (any, error) {
	l, err := evalExpr(e.LHS, vars)
	if err != nil {
		return nil, err
	}
	r, err := evalExpr(e.RHS, vars)
	if err != nil {
		return nil, err
	}
	switch e.BinOp {
	case OpEq:
		return reflect.DeepEqual(normalizeForCompare(l), normalizeForCompare(r)), nil
	case OpNe:
		return !reflect.DeepEqual(normalizeForCompare(l), normalizeForCompare(r)), nil
	case OpIn:
		list, ok := r.([]any)
		if !ok {
			return nil, fmt.Errorf("exprlang: 'in' requires a list on the right, got %T", r)
		}
		for _, item := range list {
			if reflect.DeepEqual(normalizeForCompare(l), normalizeForCompare(item)) {
				return true, nil
			}
		}
		return false, nil
	}
	lf, _, err := toNumber(l)
	if err != nil {
		return nil, err
	}
	rf, _, err := toNumber(r)
	if err != nil {
		return nil, err
	}
	switch e.BinOp {
	case OpLt:
		return lf < rf, nil
	case OpLe:
		return lf <= rf, nil
	case OpGt:
		return lf > rf, nil
	case OpGe:
		return lf >= rf, nil
	}
	return nil, fmt.Errorf("exprlang: unknown relational operator %q", e.BinOp)
}

// normalizeForCompare widens integer-like values to a common type so
// int64(5) == uint64(5) compares equal, matching CEL's numeric tower.
func normalizeForCompare(v any) any {
	switch n := v.(type) {
	case uint64:
		return int64(n)
	default:
		return n
	}
}

func evalMember(e *Expr, vars map[string]any) (any, error) {
	switch e.MemberOp {
	case MemberFunctionCall:
		if e.Base.Kind == KindIdent {
			args := make([]any, len(e.Args))
			for i := range e.Args {
				v, err := evalExpr(&e.Args[i], vars)
				if err != nil {
					return nil, err
				}
				args[i] = v
			}
			return callBuiltin(e.Field, args)
		}
		return nil, fmt.Errorf("exprlang: method calls on non-identifier bases are not supported")

	case MemberAttribute:
		base, err := evalExpr(e.Base, vars)
		if err != nil {
			return nil, err
		}
		return attributeOf(base, e.Field)

	case MemberIndex:
		base, err := evalExpr(e.Base, vars)
		if err != nil {
			return nil, err
		}
		idx, err := evalExpr(e.Index, vars)
		if err != nil {
			return nil, err
		}
		return indexOf(base, idx)

	case MemberFields:
		out := make(map[string]any, len(e.Args))
		for i, name := range e.FieldNames {
			v, err := evalExpr(&e.Args[i], vars)
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("exprlang: unknown member operation %q", e.MemberOp)
}

func attributeOf(base any, field string) (any, error) {
	m, ok := base.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("exprlang: cannot access field %q on %T", field, base)
	}
	v, ok := m[field]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func indexOf(base, idx any) (any, error) {
	switch b := base.(type) {
	case []any:
		i, _, err := toNumber(idx)
		if err != nil {
			return nil, err
		}
		n := int(i)
		if n < 0 || n >= len(b) {
			return nil, fmt.Errorf("exprlang: index %d out of range", n)
		}
		return b[n], nil
	case map[string]any:
		key, ok := idx.(string)
		if !ok {
			return nil, fmt.Errorf("exprlang: map index must be a string, got %T", idx)
		}
		return b[key], nil
	default:
		return nil, fmt.Errorf("exprlang: cannot index into %T", base)
	}
}

func callBuiltin(name string, args []any) (any, error) {
	switch name {
	case "size":
		return sizeOf(args[0])
	case "has":
		return args[0] != nil, nil
	case "type":
		return fmt.Sprintf("%T", args[0]), nil
	case "contains":
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("exprlang: contains() requires a string receiver")
		}
		sub, _ := args[1].(string)
		return strings.Contains(s, sub), nil
	case "startsWith":
		s, _ := args[0].(string)
		pfx, _ := args[1].(string)
		return strings.HasPrefix(s, pfx), nil
	case "endsWith":
		s, _ := args[0].(string)
		sfx, _ := args[1].(string)
		return strings.HasSuffix(s, sfx), nil
	case "matches":
		s, _ := args[0].(string)
		pattern, _ := args[1].(string)
		return regexp.MatchString(pattern, s)
	case "int":
		f, _, err := toNumber(args[0])
		if err != nil {
			return nil, err
		}
		return int64(f), nil
	case "double", "float":
		f, _, err := toNumber(args[0])
		if err != nil {
			return nil, err
		}
		return f, nil
	case "string":
		return stringOf(args[0]), nil
	default:
		return nil, fmt.Errorf("exprlang: unknown function %q", name)
	}
}

func sizeOf(v any) (int64, error) {
	switch s := v.(type) {
	case string:
		return int64(len(s)), nil
	case []any:
		return int64(len(s)), nil
	case map[string]any:
		return int64(len(s)), nil
	default:
		return 0, fmt.Errorf("exprlang: size() not supported for %T", v)
	}
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
