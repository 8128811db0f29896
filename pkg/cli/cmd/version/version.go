// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package version implements the `imacs version` command.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/version"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Version,
		RunE: func(fg *builder.FlagGetter) error {
			v := version.Get()
			fmt.Printf("%s %s\n", v.Name, v.Version)
			fmt.Printf("  Git Revision: %s\n", v.GitRevision)
			fmt.Printf("  Build Time:   %s\n", v.BuildTime)
			fmt.Printf("  Go Version:   %s %s/%s\n", v.GoVersion, v.GoOS, v.GoArch)
			return nil
		},
	}).Build()
}
