// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package render implements the `imacs render` command: compile a spec to
// source code for one or all of the six target languages.
package render

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/codegen"
	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/specmodel"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Render,
		Flags:   []flags.Flag{flags.Lang, flags.Output},
		Args:    cobra.ExactArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			spec, err := specmodel.LoadFile(fg.Arg(0))
			if err != nil {
				return fmt.Errorf("loading spec: %w", err)
			}

			lang := fg.GetString(flags.Lang)
			generatedAt := time.Now().UTC().Format(time.RFC3339)

			if lang == "" {
				sources, err := codegen.GenerateSpecAllTargets(spec, true, generatedAt)
				if err != nil {
					return fmt.Errorf("rendering %s: %w", spec.ID, err)
				}
				return writeAllTargets(sources, fg.GetString(flags.Output))
			}

			target := exprlang.Target(lang)
			if !validTarget(target) {
				return fmt.Errorf("unknown target language %q", lang)
			}
			source, err := codegen.GenerateSpec(spec, target, true, generatedAt)
			if err != nil {
				return fmt.Errorf("rendering %s for %s: %w", spec.ID, target, err)
			}
			return writeOne(source, fg.GetString(flags.Output))
		},
	}).Build()
}

func validTarget(t exprlang.Target) bool {
	for _, candidate := range exprlang.Targets {
		if candidate == t {
			return true
		}
	}
	return false
}

func writeOne(source, outputPath string) error {
	if outputPath == "" {
		fmt.Print(source)
		return nil
	}
	return os.WriteFile(outputPath, []byte(source), 0o644)
}

// writeAllTargets prints every target's source to stdout under a banner
// when no single --output file was given, since an --output path can only
// ever name one file.
func writeAllTargets(sources map[string]string, outputPath string) error {
	if outputPath != "" {
		return fmt.Errorf("--output requires --lang (rendering all targets produces more than one file)")
	}
	targets := make([]string, 0, len(sources))
	for t := range sources {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, t := range targets {
		fmt.Printf("// ===== %s =====\n", t)
		fmt.Println(sources[t])
	}
	return nil
}
