// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package extract implements the `imacs extract` command: pull a generated
// file's provenance header out as structured data.
package extract

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

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Extract,
		Flags:   []flags.Flag{flags.JSON, flags.Output},
		Args:    cobra.ExactArgs(1),
		RunE: func(fg *builder.FlagGetter) error {
			header, err := provenance.ParseFile(fg.Arg(0))
			if err != nil {
				return err
			}

			var data []byte
			if fg.GetBool(flags.JSON) || fg.GetString(flags.Output) != "" {
				data, err = json.MarshalIndent(header, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding provenance: %w", err)
				}
				data = append(data, '\n')
			} else {
				data = []byte(fmt.Sprintf("%s %s %s\n", header.SpecID, header.SpecHash, header.GeneratedAt))
			}

			if out := fg.GetString(flags.Output); out != "" {
				return os.WriteFile(out, data, 0o644)
			}
			fmt.Print(string(data))
			return nil
		},
	}).Build()
}
