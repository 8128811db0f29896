// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package codegen builds per-language render contexts from a decision-table
// spec or orchestrator and executes the embedded source/test templates
// against them.
package codegen

import "strings"

// ToPascalCase converts snake_case to PascalCase: "hello_world" -> "HelloWorld".
func ToPascalCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, word := range parts {
		if word == "" {
			continue
		}
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// ToCamelCase converts snake_case to camelCase: "hello_world" -> "helloWorld".
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	r := []rune(pascal)
	return strings.ToLower(string(r[0])) + string(r[1:])
}

// ToSnakeCase converts PascalCase or camelCase to snake_case: "fooBar" -> "foo_bar".
func ToSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToUpperSnakeCase converts to UPPER_SNAKE_CASE: "HelloWorld" -> "HELLO_WORLD".
func ToUpperSnakeCase(s string) string {
	return strings.ToUpper(ToSnakeCase(s))
}
