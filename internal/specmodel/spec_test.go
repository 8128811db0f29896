// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package specmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accessLevelYAML = `
id: access_level
inputs:
  - name: role
    type: string
  - name: verified
    type: bool
outputs:
  - name: level
    type: int
rules:
  - id: R1
    when: role == "admin"
    then: 100
  - id: R2
    when: role == "member" && verified
    then: 50
  - id: R3
    when: role == "member" && !verified
    then: 25
  - id: R4
    when: role == "guest"
    then: 10
`

func TestLoadSpec(t *testing.T) {
	s, err := Load([]byte(accessLevelYAML))
	require.NoError(t, err)
	assert.Equal(t, "access_level", s.ID)
	assert.Len(t, s.Inputs, 2)
	assert.Len(t, s.Rules, 4)
	assert.Equal(t, `role == "admin"`, s.Rules[0].AsCEL())
}

func TestSpecHashDeterministic(t *testing.T) {
	s1, err := Load([]byte(accessLevelYAML))
	require.NoError(t, err)
	s2, err := Load([]byte(accessLevelYAML))
	require.NoError(t, err)
	assert.Equal(t, s1.Hash(), s2.Hash())
	assert.Len(t, s1.Hash(), 16)
}

func TestSpecHashChangesWithContent(t *testing.T) {
	s1, _ := Load([]byte(accessLevelYAML))
	mutated := s1.Rules[0]
	mutated.Priority = 5
	s1.Rules[0] = mutated
	s2, _ := Load([]byte(accessLevelYAML))
	assert.NotEqual(t, s1.Hash(), s2.Hash())
}

func TestStructuredConditions(t *testing.T) {
	doc := `
id: structured
inputs:
  - name: amount
    type: float
rules:
  - id: R1
    conditions:
      - var: amount
        op: gt
        value: 1000
    then: "high"
`
	s, err := Load([]byte(doc))
	require.NoError(t, err)
	assert.True(t, s.Rules[0].IsStructuredEquality() == false) // gt, not eq
	assert.Equal(t, "amount > 1000", s.Rules[0].AsCEL())
}

func TestNamedOutput(t *testing.T) {
	doc := `
id: named_out
inputs:
  - name: x
    type: bool
rules:
  - id: R1
    when: x
    then:
      status: "ok"
      code: 0
`
	s, err := Load([]byte(doc))
	require.NoError(t, err)
	require.True(t, s.Rules[0].Then.IsMap)
	assert.Equal(t, "ok", s.Rules[0].Then.Named["status"].Str)
	assert.Equal(t, int64(0), s.Rules[0].Then.Named["code"].Int)
}

func TestLooksLikeOrchestrator(t *testing.T) {
	assert.True(t, LooksLikeOrchestrator([]byte("id: x\nchain:\n  - step: call\n")))
	assert.True(t, LooksLikeOrchestrator([]byte("id: x\nuses: [a, b]\n")))
	assert.False(t, LooksLikeOrchestrator([]byte(accessLevelYAML)))
}

const chainYAML = `
id: approval_chain
uses: [check_access]
chain:
  - step: call
    id: s1
    spec: check_access
    inputs:
      role: role
    output_as: access
  - step: gate
    id: s2
    expression: access.level >= 50
  - step: call
    id: s3
    spec: shipping_rate
    inputs:
      zone: zone
    output_as: rate
`

func TestOrchestratorReferencedSpecs(t *testing.T) {
	o, err := LoadOrchestrator([]byte(chainYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"check_access", "shipping_rate"}, o.ReferencedSpecs())
}

func TestOrchestratorValidateMissingInput(t *testing.T) {
	o, err := LoadOrchestrator([]byte(chainYAML))
	require.NoError(t, err)
	issues := o.Validate(map[string][]string{
		"check_access": {"role", "verified"},
	})
	require.Len(t, issues, 1)
	assert.Equal(t, "MissingRequiredInput", issues[0].Code)
}

func TestOrchestratorValidateDuplicateStepID(t *testing.T) {
	o, err := LoadOrchestrator([]byte(chainYAML))
	require.NoError(t, err)
	o.Chain = append(o.Chain, ChainStep{Kind: StepGate, ID: "s1", Expression: "true"})
	issues := o.Validate(nil)
	found := false
	for _, iss := range issues {
		if iss.Code == "DuplicateStepID" {
			found = true
		}
	}
	assert.True(t, found)
}
