// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package regen implements the `imacs regen` command: regenerate code for
// every spec under the project root whose stored hash no longer matches
// its current content, using the configured output directory and targets.
package regen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	imacsconfig "github.com/outboundlabs/imacs/internal/config"
	"github.com/outboundlabs/imacs/internal/codegen"
	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/internal/project"
	"github.com/outboundlabs/imacs/internal/specmodel"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

var extensions = map[exprlang.Target]string{
	exprlang.Rust:       "rs",
	exprlang.TypeScript: "ts",
	exprlang.Python:     "py",
	exprlang.CSharp:     "cs",
	exprlang.Java:       "java",
	exprlang.Go:         "go",
}

// NewRegenCmd creates the regen command.
func NewRegenCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Regen,
		Flags:   []flags.Flag{flags.All, flags.Force, flags.Clean},
		RunE: func(fg *builder.FlagGetter) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			cfg, err := imacsconfig.Load("", nil, nil)
			if err != nil {
				return err
			}
			outDir := filepath.Join(root, cfg.Codegen.OutDir)

			specPaths, err := project.DiscoverSpecFiles(root)
			if err != nil {
				return err
			}

			meta, err := project.LoadMetadata(outDir)
			if err != nil {
				return err
			}

			force := fg.GetBool(flags.Force)
			currentIDs := map[string]bool{}
			generatedAt := time.Now().UTC().Format(time.RFC3339)

			for _, path := range specPaths {
				spec, err := specmodel.LoadFile(path)
				if err != nil {
					fmt.Printf("skipping %s: %v\n", path, err)
					continue
				}
				currentIDs[spec.ID] = true
				hash := spec.Hash()

				if prior, ok := meta.Specs[spec.ID]; ok && prior.Hash == hash && !force {
					continue
				}

				files, err := regenerateSpec(spec, outDir, cfg.Codegen.Targets, cfg.Codegen.Provenance, generatedAt)
				if err != nil {
					return fmt.Errorf("regenerating %s: %w", spec.ID, err)
				}
				meta.Specs[spec.ID] = project.SpecMeta{Hash: hash, Files: files}
				fmt.Printf("regenerated %s (%d files)\n", spec.ID, len(files))
			}

			if fg.GetBool(flags.Clean) {
				for _, orphan := range meta.Orphans(currentIDs) {
					if err := os.Remove(filepath.Join(outDir, orphan)); err != nil && !os.IsNotExist(err) {
						fmt.Printf("warning: could not remove orphan %s: %v\n", orphan, err)
					}
				}
				for id := range meta.Specs {
					if !currentIDs[id] {
						delete(meta.Specs, id)
					}
				}
			}

			return meta.Save(outDir)
		},
	}).Build()
}

func regenerateSpec(spec *specmodel.Spec, outDir string, targetNames []string, provenance bool, generatedAt string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	var files []string
	for _, name := range targetNames {
		target := exprlang.Target(name)
		source, err := codegen.GenerateSpec(spec, target, provenance, generatedAt)
		if err != nil {
			return nil, err
		}
		filename := fmt.Sprintf("%s.%s", spec.ID, extensions[target])
		if err := os.WriteFile(filepath.Join(outDir, filename), []byte(source), 0o644); err != nil {
			return nil, err
		}
		files = append(files, filename)
	}
	return files, nil
}
