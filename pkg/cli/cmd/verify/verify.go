// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package verify implements the `imacs verify` command: check that
// generated code's stored provenance hash still matches its spec.
package verify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/provenance"
	"github.com/outboundlabs/imacs/internal/specmodel"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Verify,
		Args:    cobra.ExactArgs(2),
		RunE: func(fg *builder.FlagGetter) error {
			spec, err := specmodel.LoadFile(fg.Arg(0))
			if err != nil {
				return fmt.Errorf("loading spec: %w", err)
			}
			header, err := provenance.ParseFile(fg.Arg(1))
			if err != nil {
				return err
			}

			currentHash := spec.Hash()
			if header.SpecID != spec.ID {
				return fmt.Errorf("%s was generated from spec %q, not %q", fg.Arg(1), header.SpecID, spec.ID)
			}
			if !provenance.IsFresh(header, currentHash) {
				return fmt.Errorf("%s is stale: generated from hash %s, spec %s is now at %s",
					fg.Arg(1), header.SpecHash, spec.ID, currentHash)
			}
			fmt.Printf("%s is up to date with %s\n", fg.Arg(1), fg.Arg(0))
			return nil
		},
	}).Build()
}
