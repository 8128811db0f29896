// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RejectsUnknownTarget(t *testing.T) {
	cfg := Defaults()
	cfg.Codegen.Targets = []string{"cobol"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "codegen.targets[0]")
}

func TestConfig_Validate_RejectsZeroPredicateBudget(t *testing.T) {
	cfg := Defaults()
	cfg.Completeness.MaxFullPredicates = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completeness.max_full_predicates")
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, CodegenDefaults().OutDir, cfg.Codegen.OutDir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FlagOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("out-dir", "", "generated output directory")
	require.NoError(t, flags.Parse([]string{"--out-dir=build/gen"}))

	cfg, err := Load("", flags, map[string]string{"out-dir": "codegen.out_dir"})
	require.NoError(t, err)
	assert.Equal(t, "build/gen", cfg.Codegen.OutDir)
}
