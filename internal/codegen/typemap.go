// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"fmt"

	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

// MapType resolves a declared VarType to its idiomatic spelling in target's
// source language. list/object carry an element type or are rendered
// generically; enum resolves to the spec ID + variable name joined in
// PascalCase, since every target in this pack represents an enum as a
// named type generated alongside the spec rather than as a raw string.
func MapType(v specmodel.Variable, specID string, target exprlang.Target) string {
	if v.Type == specmodel.VarEnum {
		return ToPascalCase(specID) + ToPascalCase(v.Name)
	}
	if v.Type == specmodel.VarList {
		elem := mapScalar(v.ElemType, target)
		return listType(elem, target)
	}
	return mapScalar(v.Type, target)
}

func mapScalar(t specmodel.VarType, target exprlang.Target) string {
	switch target {
	case exprlang.Rust:
		switch t {
		case specmodel.VarBool:
			return "bool"
		case specmodel.VarInt:
			return "i64"
		case specmodel.VarFloat:
			return "f64"
		case specmodel.VarString:
			return "String"
		case specmodel.VarObject:
			return "serde_json::Value"
		}
	case exprlang.TypeScript:
		switch t {
		case specmodel.VarBool:
			return "boolean"
		case specmodel.VarInt, specmodel.VarFloat:
			return "number"
		case specmodel.VarString:
			return "string"
		case specmodel.VarObject:
			return "Record<string, unknown>"
		}
	case exprlang.Python:
		switch t {
		case specmodel.VarBool:
			return "bool"
		case specmodel.VarInt:
			return "int"
		case specmodel.VarFloat:
			return "float"
		case specmodel.VarString:
			return "str"
		case specmodel.VarObject:
			return "dict"
		}
	case exprlang.CSharp:
		switch t {
		case specmodel.VarBool:
			return "bool"
		case specmodel.VarInt:
			return "long"
		case specmodel.VarFloat:
			return "double"
		case specmodel.VarString:
			return "string"
		case specmodel.VarObject:
			return "object"
		}
	case exprlang.Java:
		switch t {
		case specmodel.VarBool:
			return "boolean"
		case specmodel.VarInt:
			return "long"
		case specmodel.VarFloat:
			return "double"
		case specmodel.VarString:
			return "String"
		case specmodel.VarObject:
			return "Object"
		}
	case exprlang.Go:
		switch t {
		case specmodel.VarBool:
			return "bool"
		case specmodel.VarInt:
			return "int64"
		case specmodel.VarFloat:
			return "float64"
		case specmodel.VarString:
			return "string"
		case specmodel.VarObject:
			return "map[string]any"
		}
	}
	return fmt.Sprintf("/* unmapped type %q for target %q */", t, target)
}

func listType(elem string, target exprlang.Target) string {
	switch target {
	case exprlang.Rust:
		return "Vec<" + elem + ">"
	case exprlang.TypeScript:
		return elem + "[]"
	case exprlang.Python:
		return "list[" + elem + "]"
	case exprlang.CSharp:
		return "List<" + elem + ">"
	case exprlang.Java:
		return "List<" + elem + ">"
	case exprlang.Go:
		return "[]" + elem
	}
	return elem
}
