// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package flags declares the CLI's flag vocabulary once so every subcommand
// that shares a flag (--lang, --json, --output) gets identical name,
// shorthand, and help text.
package flags

import "github.com/spf13/cobra"

// Flag describes one pflag registration, independent of which commands use
// it.
type Flag struct {
	Name      string
	Shorthand string
	Usage     string
	Type      string // "bool", or "" for string
}

var (
	Lang = Flag{
		Name:      "lang",
		Shorthand: "l",
		Usage:     "Target language: rust, typescript, python, csharp, java, or go (default: all)",
	}

	Output = Flag{
		Name:      "output",
		Shorthand: "o",
		Usage:     "Write output to this file instead of stdout",
	}

	JSON = Flag{
		Name:  "json",
		Usage: "Emit machine-readable JSON",
		Type:  "bool",
	}

	Full = Flag{
		Name:  "full",
		Usage: "Run the exhaustive analysis even above the predicate budget",
		Type:  "bool",
	}

	Strict = Flag{
		Name:  "strict",
		Usage: "Treat analyzer warnings as validation failures",
		Type:  "bool",
	}

	Fix = Flag{
		Name:  "fix",
		Usage: "Attempt high-confidence suggested fixes (spec files are not rewritten)",
		Type:  "bool",
	}

	DryRun = Flag{
		Name:  "dry-run",
		Usage: "Preview fixes without writing them",
		Type:  "bool",
	}

	All = Flag{
		Name:  "all",
		Usage: "Process every spec found under the project root",
		Type:  "bool",
	}

	Force = Flag{
		Name:  "force",
		Usage: "Regenerate even when the stored hash already matches",
		Type:  "bool",
	}

	Clean = Flag{
		Name:  "clean",
		Usage: "Remove files left behind by specs that no longer exist",
		Type:  "bool",
	}

	Root = Flag{
		Name:  "root",
		Usage: "Directory to initialize as a project root (default: current directory)",
	}

	Config = Flag{
		Name:  "config",
		Usage: "Path to a configuration file",
	}
)

// AddFlags registers flags on cmd, defaulting every string flag to "" and
// every bool flag to false — callers distinguish "not set" from a real
// value via cmd.Flags().Changed.
func AddFlags(cmd *cobra.Command, flags ...Flag) {
	for _, f := range flags {
		if f.Type == "bool" {
			cmd.Flags().BoolP(f.Name, f.Shorthand, false, f.Usage)
		} else {
			cmd.Flags().StringP(f.Name, f.Shorthand, "", f.Usage)
		}
	}
}
