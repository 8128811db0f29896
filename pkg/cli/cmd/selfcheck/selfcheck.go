// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package selfcheck implements the `imacs selfcheck` command: validate
// imacs's own configuration and the expression engine's target table for
// internal consistency, independent of any spec file.
package selfcheck

import (
	"fmt"

	"github.com/spf13/cobra"

	imacsconfig "github.com/outboundlabs/imacs/internal/config"
	"github.com/outboundlabs/imacs/internal/exprlang"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
)

// NewSelfcheckCmd creates the selfcheck command.
func NewSelfcheckCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Selfcheck,
		RunE: func(fg *builder.FlagGetter) error {
			var problems []string

			cfg, err := imacsconfig.Load("", nil, nil)
			if err != nil {
				problems = append(problems, fmt.Sprintf("configuration: %v", err))
			} else if err := cfg.Validate(); err != nil {
				problems = append(problems, fmt.Sprintf("configuration: %v", err))
			}

			if len(exprlang.Targets) != 6 {
				problems = append(problems, fmt.Sprintf("expression engine: expected 6 render targets, found %d", len(exprlang.Targets)))
			}
			for _, t := range exprlang.Targets {
				if _, err := exprlang.Compile("1 == 1", t); err != nil {
					problems = append(problems, fmt.Sprintf("expression engine: target %s cannot render a trivial expression: %v", t, err))
				}
			}

			if len(problems) == 0 {
				fmt.Println("selfcheck passed")
				return nil
			}
			for _, p := range problems {
				fmt.Printf("FAIL: %s\n", p)
			}
			return fmt.Errorf("selfcheck found %d problem(s)", len(problems))
		},
	}).Build()
}
