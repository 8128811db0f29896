// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package config implements the `imacs config` command group: inspecting
// imacs's own layered configuration, as distinct from spec.yaml inspection
// (see pkg/cli/cmd/schema).
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	imacsconfig "github.com/outboundlabs/imacs/internal/config"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := (&builder.CommandBuilder{Command: constants.Config}).Build()
	cmd.AddCommand(newCheckCmd(), newSchemaCmd())
	return cmd
}

func newCheckCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.ConfigCheck,
		Flags:   []flags.Flag{flags.JSON, flags.Config},
		RunE: func(fg *builder.FlagGetter) error {
			cfg, err := imacsconfig.Load(fg.GetString(flags.Config), nil, nil)
			if err != nil {
				return err
			}
			if fg.GetBool(flags.JSON) {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			fmt.Println("configuration is valid")
			fmt.Printf("  logging.level:  %s\n", cfg.Logging.Level)
			fmt.Printf("  codegen.targets: %v\n", cfg.Codegen.Targets)
			fmt.Printf("  codegen.out_dir: %s\n", cfg.Codegen.OutDir)
			fmt.Printf("  completeness.max_full_predicates: %d\n", cfg.Completeness.MaxFullPredicates)
			return nil
		},
	}).Build()
}

func newSchemaCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.ConfigSchema,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			defaults := imacsconfig.Defaults()

			var section any
			switch fg.Arg(0) {
			case "":
				section = defaults
			case "logging":
				section = defaults.Logging
			case "codegen":
				section = defaults.Codegen
			case "completeness":
				section = defaults.Completeness
			default:
				return fmt.Errorf("unknown configuration section %q", fg.Arg(0))
			}

			data, err := json.MarshalIndent(section, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}).Build()
}
