// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package drift implements the `imacs drift` command: classify the
// relationship between two generated files' provenance.
package drift

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

type result struct {
	StatusA provenance.Header `json:"file_a"`
	StatusB provenance.Header `json:"file_b"`
	Drift   provenance.DriftStatus `json:"status"`
}

// NewDriftCmd creates the drift command. Exit code 0 for Synced/MinorDrift,
// 1 otherwise, per the documented CLI contract.
func NewDriftCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Drift,
		Flags:   []flags.Flag{flags.JSON},
		Args:    cobra.ExactArgs(2),
		RunE: func(fg *builder.FlagGetter) error {
			a, err := provenance.ParseFile(fg.Arg(0))
			if err != nil {
				return err
			}
			b, err := provenance.ParseFile(fg.Arg(1))
			if err != nil {
				return err
			}
			status := provenance.Compare(a, b)

			if fg.GetBool(flags.JSON) {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result{StatusA: a, StatusB: b, Drift: status}); err != nil {
					return err
				}
			} else {
				fmt.Printf("%s vs %s: %s\n", fg.Arg(0), fg.Arg(1), status)
			}

			if status != provenance.StatusSynced && status != provenance.StatusMinorDrift {
				return fmt.Errorf("drift detected: %s", status)
			}
			return nil
		},
	}).Build()
}
