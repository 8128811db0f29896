// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package constants holds the usage/help text for every imacs subcommand,
// kept separate from the command wiring itself.
package constants

// Command groups a cobra command's static usage and help text.
type Command struct {
	Use     string
	Short   string
	Long    string
	Example string
}

var (
	Render = Command{
		Use:   "render <spec.yaml>",
		Short: "Render a spec to source code",
		Long:  "Render a decision-table spec to formatted source code for one or all of the six target languages.",
		Example: `  # Print all six targets to stdout
  imacs render access.yaml

  # Render a single target to a file
  imacs render access.yaml --lang go --output access.go`,
	}

	Test = Command{
		Use:   "test <spec.yaml>",
		Short: "Generate a test suite for a spec",
		Long:  "Synthesize a positive/boundary/exhaustive test suite for a spec's generated evaluator.",
		Example: `  # Generate a Go test file alongside the evaluator
  imacs test access.yaml --lang go --output access_test.go`,
	}

	Completeness = Command{
		Use:   "completeness <spec|dir>",
		Short: "Analyze a spec or spec suite for gaps, overlaps, and dead rules",
		Long:  "Run the completeness/conflict analyzer over a single spec file or a directory of specs and orchestrators.",
		Example: `  # Analyze a single spec
  imacs completeness access.yaml

  # Analyze a whole directory, including cross-spec collisions and chains
  imacs completeness ./specs --full --json`,
	}

	Validate = Command{
		Use:   "validate <spec.yaml>",
		Short: "Validate a spec's structure and suggest fixes",
		Long:  "Parse and structurally validate a spec, optionally surfacing suggested remediations from suite analysis.",
		Example: `  # Validate strictly and print a machine-readable report
  imacs validate access.yaml --strict --json

  # Preview suggested fixes without writing them
  imacs validate access.yaml --fix --dry-run`,
	}

	Verify = Command{
		Use:   "verify <spec.yaml> <code>",
		Short: "Verify that generated code matches a spec's current hash",
		Long:  "Check a generated source file's provenance header against the current hash of its source spec.",
	}

	Analyze = Command{
		Use:   "analyze <code>",
		Short: "Report the provenance of a generated source file",
		Long:  "Read a generated source file's provenance header and report the spec ID, hash, and generation time.",
	}

	Extract = Command{
		Use:   "extract <code>",
		Short: "Extract a generated file's provenance as structured data",
		Long:  "Extract a generated source file's provenance header to JSON, optionally writing it to a file.",
	}

	Sexp = Command{
		Use:   "sexp <expr>",
		Short: "Parse a condition expression and print its AST as an s-expression",
		Long:  "Parse a single condition/output expression through the expression engine and print its AST in s-expression form.",
	}

	Drift = Command{
		Use:   "drift <code_a> <code_b>",
		Short: "Compare the provenance of two generated files",
		Long:  "Classify the relationship between two generated files' provenance headers as synced, drifted, or unrelated.",
	}

	Config = Command{
		Use:   "config",
		Short: "Inspect imacs's own configuration",
	}

	ConfigCheck = Command{
		Use:   "check",
		Short: "Load and validate the effective configuration",
	}

	ConfigSchema = Command{
		Use:   "schema [name]",
		Short: "Print the configuration schema, or one section of it",
	}

	Schema = Command{
		Use:   "schema [name]",
		Short: "Print the spec YAML schema, or one section of it",
	}

	Init = Command{
		Use:   "init",
		Short: "Initialize a new spec project root",
		Example: `  # Initialize the current directory as a project root
  imacs init

  # Initialize a specific directory
  imacs init --root ./specs`,
	}

	Regen = Command{
		Use:   "regen",
		Short: "Regenerate code for every stale spec under the project root",
		Example: `  # Regenerate everything whose hash has changed
  imacs regen --all

  # Force regeneration and remove orphaned files
  imacs regen --all --force --clean`,
	}

	Status = Command{
		Use:   "status",
		Short: "Report the project root and staleness of its generated code",
	}

	Selfcheck = Command{
		Use:   "selfcheck",
		Short: "Run imacs's own internal consistency checks",
		Long:  "Validate the loaded configuration and the expression-engine target table, reporting any internal inconsistency.",
	}

	Version = Command{
		Use:   "version",
		Short: "Print version information",
	}
)
