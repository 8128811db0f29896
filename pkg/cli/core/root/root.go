// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package root assembles the imacs CLI's root command from every
// subcommand package.
package root

import (
	"github.com/spf13/cobra"

	"github.com/outboundlabs/imacs/pkg/cli/cmd/analyze"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/completeness"
	imacsconfigcmd "github.com/outboundlabs/imacs/pkg/cli/cmd/config"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/drift"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/extract"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/initcmd"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/regen"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/render"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/schema"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/selfcheck"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/sexp"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/status"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/test"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/validate"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/verify"
	"github.com/outboundlabs/imacs/pkg/cli/cmd/version"
	"github.com/outboundlabs/imacs/pkg/cli/common/config"
)

// BuildRootCmd assembles the root command with all subcommands.
func BuildRootCmd(cfg *config.CLIConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   cfg.Name,
		Short: cfg.ShortDescription,
		Long:  cfg.LongDescription,
	}

	rootCmd.AddCommand(
		render.NewRenderCmd(),
		test.NewTestCmd(),
		completeness.NewCompletenessCmd(),
		validate.NewValidateCmd(),
		verify.NewVerifyCmd(),
		analyze.NewAnalyzeCmd(),
		extract.NewExtractCmd(),
		sexp.NewSexpCmd(),
		drift.NewDriftCmd(),
		imacsconfigcmd.NewConfigCmd(),
		schema.NewSchemaCmd(),
		initcmd.NewInitCmd(),
		regen.NewRegenCmd(),
		status.NewStatusCmd(),
		selfcheck.NewSelfcheckCmd(),
		version.NewVersionCmd(),
	)

	return rootCmd
}
