// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package test implements the `imacs test` command: synthesize a test
// suite for a spec's generated evaluator.
package test

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/codegen"
	"github.com/outboundlabs/imacs/internal/specmodel"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

// NewTestCmd creates the test command.
func NewTestCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Test,
		Flags:   []flags.Flag{flags.Lang, flags.Output},
		Args:    cobra.ExactArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			spec, err := specmodel.LoadFile(fg.Arg(0))
			if err != nil {
				return fmt.Errorf("loading spec: %w", err)
			}

			lang := fg.GetString(flags.Lang)
			if lang != "" && lang != "go" {
				return fmt.Errorf("test generation currently only supports --lang go (got %q)", lang)
			}

			cases := codegen.GenerateTestCases(spec)
			source := codegen.RenderGoTestSource(spec, cases)

			output := fg.GetString(flags.Output)
			if output == "" {
				fmt.Print(source)
				return nil
			}
			return os.WriteFile(output, []byte(source), 0o644)
		},
	}).Build()
}
