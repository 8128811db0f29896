// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outboundlabs/imacs/internal/exprlang"
)

func TestSexpString_Atom(t *testing.T) {
	e, err := exprlang.Parse("42")
	assert.NoError(t, err)
	assert.Equal(t, "42", sexpString(&e))
}

func TestSexpString_Relation(t *testing.T) {
	e, err := exprlang.Parse("age >= 18")
	assert.NoError(t, err)
	assert.Equal(t, "(>= age 18)", sexpString(&e))
}

func TestSexpString_AndOr(t *testing.T) {
	e, err := exprlang.Parse("a && b || c")
	assert.NoError(t, err)
	assert.Equal(t, "(or (and a b) c)", sexpString(&e))
}

func TestSexpString_Ternary(t *testing.T) {
	e, err := exprlang.Parse("cond ? 1 : 2")
	assert.NoError(t, err)
	assert.Equal(t, "(if cond 1 2)", sexpString(&e))
}

func TestSexpString_MemberAndCall(t *testing.T) {
	e, err := exprlang.Parse("size(items) > 0")
	assert.NoError(t, err)
	assert.Equal(t, "(> (call size items) 0)", sexpString(&e))
}

func TestSexpString_Nil(t *testing.T) {
	assert.Equal(t, "()", sexpString(nil))
}
