// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package initcmd implements the `imacs init` command: mark a directory as
// a spec project root.
package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/internal/project"
	"github.com/outboundlabs/imacs/pkg/cli/common/builder"
	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return (&builder.CommandBuilder{
		Command: constants.Init,
		Flags:   []flags.Flag{flags.Root},
		RunE: func(fg *builder.FlagGetter) error {
			dir := fg.GetString(flags.Root)
			if dir == "" {
				dir = "."
			}
			if err := project.InitRoot(dir); err != nil {
				return err
			}
			fmt.Printf("initialized project root at %s\n", dir)
			return nil
		},
	}).Build()
}
