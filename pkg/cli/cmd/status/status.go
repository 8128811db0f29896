// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package status implements the `imacs status` command: report the project
// root and the staleness of each spec's generated code.
package status

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	imacsconfig "github.com/outboundlabs/imacs/internal/config"
	"github.com/outboundlabs/imacs/internal/project"
	"github.com/outboundlabs/imacs/internal/specmodel"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

type specStatus struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Stale bool   `json:"stale"`
}

type projectStatus struct {
	Root   string       `json:"root"`
	OutDir string       `json:"out_dir"`
	Specs  []specStatus `json:"specs"`
}

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Status,
		Flags:   []flags.Flag{flags.JSON},
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

			meta, err := project.LoadMetadata(outDir)
			if err != nil {
				return err
			}
			specPaths, err := project.DiscoverSpecFiles(root)
			if err != nil {
				return err
			}

			result := projectStatus{Root: root, OutDir: outDir}
			for _, path := range specPaths {
				spec, err := specmodel.LoadFile(path)
				if err != nil {
					continue
				}
				prior, known := meta.Specs[spec.ID]
				stale := !known || prior.Hash != spec.Hash()
				result.Specs = append(result.Specs, specStatus{ID: spec.ID, Path: path, Stale: stale})
			}

			if fg.GetBool(flags.JSON) {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Printf("root:    %s\n", result.Root)
			fmt.Printf("out dir: %s\n", result.OutDir)
			for _, s := range result.Specs {
				mark := "up to date"
				if s.Stale {
					mark = "stale"
				}
				fmt.Printf("  %-20s %s (%s)\n", s.ID, mark, s.Path)
			}
			return nil
		},
	}).Build()
}
