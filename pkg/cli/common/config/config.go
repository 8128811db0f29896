// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package config holds the root command's own static identity — its name
// and help text — distinct from internal/config's layered runtime
// configuration.
package config

// CLIConfig describes the root command's identity.
type CLIConfig struct {
	Name             string
	ShortDescription string
	LongDescription  string
}

// DefaultConfig returns the imacs root command's identity.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Name:             "imacs",
		ShortDescription: "Generate decision-table evaluators from specs",
		LongDescription: "imacs compiles decision-table specs into evaluators for six target " +
			"languages, synthesizes test suites from the rule coverage, and analyzes specs " +
			"and spec suites for gaps, overlaps, and dead rules.",
	}
}
