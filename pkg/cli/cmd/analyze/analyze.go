// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package analyze implements the `imacs analyze` command: report a
// generated source file's provenance.
package analyze

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/provenance"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Analyze,
		Flags:   []flags.Flag{flags.JSON},
		Args:    cobra.ExactArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			header, err := provenance.ParseFile(fg.Arg(0))
			if err != nil {
				return err
			}
			if fg.GetBool(flags.JSON) {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(header)
			}
			fmt.Printf("spec:         %s\n", header.SpecID)
			fmt.Printf("spec hash:    %s\n", header.SpecHash)
			fmt.Printf("generated at: %s\n", header.GeneratedAt)
			return nil
		},
	}).Build()
}
