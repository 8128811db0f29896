// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate implements the `imacs validate` command: parse and
// structurally validate a spec or orchestrator and surface suggested fixes
// from suite analysis. --fix passes the suggestions to
// completeness.ApplyFixes without override, so only high-confidence ones are
// attempted, and its result is not printed; no spec file is ever rewritten.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/completeness"
	"github.com/outboundlabs/imacs/internal/project"
	"github.com/outboundlabs/imacs/internal/specmodel"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

type fileReport struct {
	Path        string                      `json:"path"`
	Kind        string                      `json:"kind"`
	Issues      []specmodel.ValidationIssue `json:"issues,omitempty"`
	Suggestions []completeness.Suggestion   `json:"suggestions,omitempty"`
}

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Validate,
		Flags:   []flags.Flag{flags.Strict, flags.JSON, flags.Fix, flags.DryRun, flags.All},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			var paths []string
			if fg.GetBool(flags.All) {
				root, err := project.FindRoot(".")
				if err != nil {
					return err
				}
				paths, err = project.DiscoverSpecFiles(root)
				if err != nil {
					return err
				}
			} else {
				if fg.Arg(0) == "" {
					return fmt.Errorf("a spec path is required unless --all is set")
				}
				paths = []string{fg.Arg(0)}
			}

			strict := fg.GetBool(flags.Strict)
			asJSON := fg.GetBool(flags.JSON)
			applyFix := fg.GetBool(flags.Fix)
			dryRun := fg.GetBool(flags.DryRun)

			var reports []fileReport
			var failed bool
			for _, path := range paths {
				report, hasFailure, err := validateOne(path, strict)
				if err != nil {
					return err
				}
				failed = failed || hasFailure
				reports = append(reports, report)
			}

			if applyFix {
				for i := range reports {
					if len(reports[i].Suggestions) == 0 {
						continue
					}
					result := completeness.ApplyFixes(reports[i].Suggestions, false, func(s completeness.Suggestion) error {
						if dryRun {
							fmt.Printf("would apply [%s] %s: %s\n", s.Kind, s.Code, s.Description)
							return nil
						}
						return fmt.Errorf("applying fixes to spec YAML is not yet automated; apply %s (%s) by hand", s.Code, s.Description)
					})
					_ = result
				}
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					printFileReport(r)
				}
			}

			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}).Build()
}

func validateOne(path string, strict bool) (fileReport, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	if specmodel.LooksLikeOrchestrator(data) {
		orch, err := specmodel.LoadOrchestrator(data)
		if err != nil {
			return fileReport{}, false, fmt.Errorf("parsing %s: %w", path, err)
		}
		specInputs := loadReferencedInputs(filepath.Dir(path), orch.ReferencedSpecs())
		issues := orch.Validate(specInputs)
		return fileReport{Path: path, Kind: "orchestrator", Issues: issues}, hasFailure(issues, strict), nil
	}

	spec, err := specmodel.Load(data)
	if err != nil {
		return fileReport{}, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	suite := completeness.AnalyzeSuite([]completeness.NamedSpec{{ID: spec.ID, Spec: spec}}, false)
	failed := false
	for _, r := range suite.Individual {
		failed = failed || !r.Passed
	}
	return fileReport{Path: path, Kind: "spec", Suggestions: suite.Suggestions}, failed, nil
}

// loadReferencedInputs loads each referenced spec's sibling file in dir to
// collect its declared input names for orchestrator wiring validation;
// specs that can't be found are omitted, and Orchestrator.Validate then
// checks no inputs for the steps that call them.
func loadReferencedInputs(dir string, specIDs []string) map[string][]string {
	out := map[string][]string{}
	for _, id := range specIDs {
		for _, ext := range []string{".yaml", ".yml"} {
			spec, err := specmodel.LoadFile(filepath.Join(dir, id+ext))
			if err == nil {
				out[id] = spec.InputNames()
				break
			}
		}
	}
	return out
}

func hasFailure(issues []specmodel.ValidationIssue, strict bool) bool {
	for _, i := range issues {
		if i.Severity == specmodel.SeverityError || (strict && i.Severity == specmodel.SeverityWarning) {
			return true
		}
	}
	return false
}

func printFileReport(r fileReport) {
	fmt.Printf("%s (%s):\n", r.Path, r.Kind)
	if len(r.Issues) == 0 && len(r.Suggestions) == 0 {
		fmt.Println("  ok")
		return
	}
	for _, i := range r.Issues {
		fmt.Printf("  [%s] %s: %s\n", i.Severity, i.Code, i.Message)
	}
	for _, s := range r.Suggestions {
		fmt.Printf("  suggestion [%s] %s: %s\n", s.Confidence, s.Code, s.Description)
	}
}
