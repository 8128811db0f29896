// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package completeness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/outboundlabs/imacs/internal/specmodel"
)

// MappingIssueType classifies a problem found between an orchestrator's
// call step and the spec it invokes.
type MappingIssueType string

const (
	MissingInput       MappingIssueType = "missing_input"
	UnusedOutput       MappingIssueType = "unused_output"
	OutputTypeMismatch MappingIssueType = "output_type_mismatch"
	InputTypeMismatch  MappingIssueType = "input_type_mismatch"
)

// MappingIssue is one input/output wiring problem between an orchestrator
// step and the spec it calls.
type MappingIssue struct {
	StepID  string
	SpecID  string
	Type    MappingIssueType
	Details string
}

// OrchestratorSuiteResult is the result of analyzing one orchestrator and
// every spec it reaches.
type OrchestratorSuiteResult struct {
	OrchestratorID    string
	ReferencedSpecIDs []string
	FoundSpecs        []string
	MissingSpecs      []string
	Suite             SuiteResult
	MappingIssues     []MappingIssue
}

// AnalyzeOrchestratorSuite resolves orchestrator's referenced specs against
// availableSpecs, runs suite analysis over the ones found, and separately
// checks call-step input/output wiring against every reachable spec
// regardless of whether it made it into the suite pass.
func AnalyzeOrchestratorSuite(orch *specmodel.Orchestrator, availableSpecs map[string]*specmodel.Spec, full bool) OrchestratorSuiteResult {
	referenced := orch.ReferencedSpecs()

	var found, missing []string
	var toAnalyze []NamedSpec
	for _, id := range referenced {
		if spec, ok := availableSpecs[id]; ok {
			found = append(found, id)
			toAnalyze = append(toAnalyze, NamedSpec{ID: id, Spec: spec})
		} else {
			missing = append(missing, id)
		}
	}

	suite := AnalyzeSuite(toAnalyze, full)
	mappingIssues := checkChainMappings(orch.Chain, availableSpecs)

	return OrchestratorSuiteResult{
		OrchestratorID:    orch.ID,
		ReferencedSpecIDs: referenced,
		FoundSpecs:        found,
		MissingSpecs:      missing,
		Suite:             suite,
		MappingIssues:     mappingIssues,
	}
}

// checkChainMappings walks every step of the chain recursively, checking
// Call steps: every required input of the referenced spec must be supplied,
// and — since this model's CallStep carries a single OutputAs binding
// rather than the reference implementation's per-output map — a spec
// declaring any outputs but leaving OutputAs empty has nowhere for its
// result to go.
func checkChainMappings(steps []specmodel.ChainStep, specs map[string]*specmodel.Spec) []MappingIssue {
	var issues []MappingIssue
	var walk func([]specmodel.ChainStep)
	walk = func(steps []specmodel.ChainStep) {
		for _, step := range steps {
			switch step.Kind {
			case specmodel.StepCall:
				spec, ok := specs[step.Spec]
				if !ok {
					continue
				}
				for _, input := range spec.Inputs {
					if _, supplied := step.Inputs[input.Name]; !supplied {
						issues = append(issues, MappingIssue{
							StepID: step.ID, SpecID: step.Spec, Type: MissingInput,
							Details: fmt.Sprintf("required input %q (type: %s) not provided", input.Name, input.Type),
						})
					}
				}
				if len(spec.Outputs) > 0 && step.OutputAs == "" {
					issues = append(issues, MappingIssue{
						StepID: step.ID, SpecID: step.Spec, Type: UnusedOutput,
						Details: fmt.Sprintf("spec %q produces %d output(s) but the call has no output_as binding", step.Spec, len(spec.Outputs)),
					})
				}
			case specmodel.StepParallel:
				walk(step.Branches)
			case specmodel.StepBranch:
				walk(step.Then)
				walk(step.Else)
			case specmodel.StepLoop, specmodel.StepForEach:
				walk(step.Body)
			case specmodel.StepTry:
				walk(step.TrySteps)
				for _, cb := range step.Catch {
					walk(cb.Steps)
				}
				walk(step.Finally)
			}
		}
	}
	walk(steps)
	return issues
}

// DirectoryResult is the result of analyzing a whole directory that may
// contain both plain specs and orchestrators.
type DirectoryResult struct {
	SpecsFound          int
	OrchestratorsFound  int
	OrchestratorResults []OrchestratorSuiteResult
	OverallSuite        SuiteResult
}

// AnalyzeDirectory loads every .yaml/.yml file in dirPath, sorting each into
// a spec or an orchestrator by a cheap textual sniff (presence of a
// top-level "chain:" or "uses:" key — the same heuristic the reference
// implementation uses to avoid needing to know the discriminator before
// parsing), analyzes every orchestrator found against the loaded specs, and
// separately runs a suite analysis over all specs together.
func AnalyzeDirectory(dirPath string, full bool) (DirectoryResult, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return DirectoryResult{}, fmt.Errorf("reading directory %s: %w", dirPath, err)
	}

	specs := map[string]*specmodel.Spec{}
	var orchestrators []*specmodel.Orchestrator

	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dirPath, name))
		if err != nil {
			return DirectoryResult{}, fmt.Errorf("reading %s: %w", name, err)
		}
		if specmodel.LooksLikeOrchestrator(data) {
			if orch, err := specmodel.LoadOrchestrator(data); err == nil {
				orchestrators = append(orchestrators, orch)
				continue
			}
		}
		if spec, err := specmodel.Load(data); err == nil {
			specs[spec.ID] = spec
		}
	}

	var orchResults []OrchestratorSuiteResult
	for _, orch := range orchestrators {
		orchResults = append(orchResults, AnalyzeOrchestratorSuite(orch, specs, full))
	}

	var all []NamedSpec
	for id, spec := range specs {
		all = append(all, NamedSpec{ID: id, Spec: spec})
	}
	overall := AnalyzeSuite(all, full)

	return DirectoryResult{
		SpecsFound:          len(specs),
		OrchestratorsFound:  len(orchestrators),
		OrchestratorResults: orchResults,
		OverallSuite:        overall,
	}, nil
}
