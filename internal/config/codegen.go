// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package config

// CodegenConfig defines settings for the code generation pipeline.
type CodegenConfig struct {
	// Targets is the set of language targets `imacs regen` writes for each
	// stale spec. Valid entries: rust, typescript, python, csharp, java, go.
	Targets []string `koanf:"targets"`
	// OutDir is the directory generated sources are written to.
	OutDir string `koanf:"out_dir"`
	// Provenance embeds a spec-content hash and generation timestamp as a
	// header comment in every generated file.
	Provenance bool `koanf:"provenance"`
	// EmitTests is read by no command: `imacs regen` writes evaluator
	// sources only, and test suites are written by `imacs test`.
	EmitTests bool `koanf:"emit_tests"`
}

var validTargets = []string{"rust", "typescript", "python", "csharp", "java", "go"}

// CodegenDefaults returns the default code generation configuration.
func CodegenDefaults() CodegenConfig {
	return CodegenConfig{
		Targets:    validTargets,
		OutDir:     "generated",
		Provenance: true,
		EmitTests:  true,
	}
}

// Validate validates the code generation configuration.
func (c *CodegenConfig) Validate(path *Path) ValidationErrors {
	var errs ValidationErrors
	if len(c.Targets) == 0 {
		errs = append(errs, Required(path.Child("targets")))
	}
	for i, t := range c.Targets {
		if err := MustBeOneOf(path.Child("targets").Index(i), t, validTargets); err != nil {
			errs = append(errs, err)
		}
	}
	if err := MustNotBeEmpty(path.Child("out_dir"), c.OutDir); err != nil {
		errs = append(errs, err)
	}
	return errs
}
