// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package config

// CompletenessConfig defines settings for the decision-table completeness
// and conflict analyzer.
type CompletenessConfig struct {
	// MaxFullPredicates is a predicate-alphabet size limit for the analyzer.
	// The analyzer does not read it: it uses its own built-in limit of 64,
	// above which (unless run with --full) it skips coverage and
	// missing-case detection and runs only its pairwise checks. The value
	// is validated and shown by `imacs config check`.
	MaxFullPredicates int `koanf:"max_full_predicates"`
	// FailOnGap marks an uncovered input combination as a failure. No
	// command reads it: `imacs completeness` exits non-zero whenever an
	// analyzed spec is incomplete.
	FailOnGap bool `koanf:"fail_on_gap"`
	// FailOnOverlap marks two equal-priority rules matching the same input
	// as a failure. No command reads it (see FailOnGap).
	FailOnOverlap bool `koanf:"fail_on_overlap"`
}

// CompletenessDefaults returns the default analyzer configuration.
func CompletenessDefaults() CompletenessConfig {
	return CompletenessConfig{
		MaxFullPredicates: 64,
		FailOnGap:         true,
		FailOnOverlap:     false,
	}
}

// Validate validates the analyzer configuration.
func (c *CompletenessConfig) Validate(path *Path) ValidationErrors {
	var errs ValidationErrors
	if err := MustBeGreaterThan(path.Child("max_full_predicates"), c.MaxFullPredicates, 0); err != nil {
		errs = append(errs, err)
	}
	return errs
}
