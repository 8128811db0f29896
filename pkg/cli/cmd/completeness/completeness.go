// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package completeness implements the `imacs completeness` command: run the
// gap/overlap/dead-rule analyzer over a single spec, a directory of specs,
// or an orchestrator and the specs it reaches.
package completeness

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/completeness"
	"github.com/outboundlabs/imacs/internal/specmodel"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

// NewCompletenessCmd creates the completeness command.
func NewCompletenessCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Completeness,
		Flags:   []flags.Flag{flags.JSON, flags.Full},
		Args:    cobra.ExactArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			path := fg.Arg(0)
			full := fg.GetBool(flags.Full)

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			var report any
			var incomplete bool

			if info.IsDir() {
				dirResult, err := completeness.AnalyzeDirectory(path, full)
				if err != nil {
					return err
				}
				report = dirResult
				for _, r := range dirResult.OverallSuite.Individual {
					incomplete = incomplete || !r.Passed
				}
			} else {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				spec, err := specmodel.Load(data)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", path, err)
				}
				r := completeness.Analyze(spec, full)
				report = r
				incomplete = !r.IsComplete
			}

			if fg.GetBool(flags.JSON) {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(report)
			}

			if incomplete {
				return fmt.Errorf("completeness analysis found gaps, overlaps, or dead rules")
			}
			return nil
		},
	}).Build()
}

func printReport(report any) {
	switch r := report.(type) {
	case completeness.Report:
		fmt.Printf("spec %s: complete=%t mode=%s coverage=%.2f%%\n", r.SpecID, r.IsComplete, r.Mode, r.CoverageRatio*100)
		for _, missing := range r.MissingCases {
			fmt.Printf("  missing: %s\n", missing)
		}
		for _, o := range r.Overlaps {
			fmt.Printf("  overlap: %s vs %s (%s)\n", o.RuleA, o.RuleB, o.Expression)
		}
		for _, dead := range r.DeadRules {
			fmt.Printf("  dead rule: %s\n", dead)
		}
	case completeness.DirectoryResult:
		fmt.Printf("specs=%d orchestrators=%d\n", r.SpecsFound, r.OrchestratorsFound)
		for _, ind := range r.OverallSuite.Individual {
			fmt.Printf("  %s: complete=%t\n", ind.SpecID, ind.Passed)
		}
		for _, c := range r.OverallSuite.Collisions {
			fmt.Printf("  collision: %s\n", c.VariableName)
		}
		for _, s := range r.OverallSuite.Suggestions {
			fmt.Printf("  suggestion [%s]: %s\n", s.Confidence, s.Description)
		}
	}
}
