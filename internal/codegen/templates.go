// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

func targetSuffix(target exprlang.Target) string {
	return string(target)
}

// GenerateSpec renders spec's decision table to target's source, with or
// without the generated-file provenance header.
func GenerateSpec(spec *specmodel.Spec, target exprlang.Target, provenance bool, generatedAt string) (string, error) {
	ctx, err := NewSpecContext(spec, target, provenance, generatedAt)
	if err != nil {
		return "", fmt.Errorf("building render context for spec %q: %w", spec.ID, err)
	}
	name := fmt.Sprintf("spec_%s.tmpl", targetSuffix(target))
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, ctx); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// GenerateOrchestrator renders orch's chain to target's source. specs
// resolves every Call step's referenced spec for input/output wiring.
func GenerateOrchestrator(orch *specmodel.Orchestrator, specs map[string]*specmodel.Spec, target exprlang.Target) (string, error) {
	ctx := NewOrchestratorContext(orch, specs, target)
	name := fmt.Sprintf("orchestrator_%s.tmpl", targetSuffix(target))
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, ctx); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// GenerateSpecAllTargets renders spec to all six supported targets, keyed by
// target name.
func GenerateSpecAllTargets(spec *specmodel.Spec, provenance bool, generatedAt string) (map[string]string, error) {
	out := make(map[string]string, len(exprlang.Targets))
	for _, t := range exprlang.Targets {
		src, err := GenerateSpec(spec, t, provenance, generatedAt)
		if err != nil {
			return nil, err
		}
		out[string(t)] = src
	}
	return out, nil
}
