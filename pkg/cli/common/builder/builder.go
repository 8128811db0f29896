// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

// Package builder assembles cobra commands from a constants.Command
// descriptor and a flag list, so each pkg/cli/cmd/<name> package only has
// to supply usage text, its flags, and a RunE closure — never its own
// *cobra.Command boilerplate.
package builder

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/outboundlabs/imacs/pkg/cli/constants"
	"github.com/outboundlabs/imacs/pkg/cli/flags"
)

// FlagGetter wraps a command invocation's resolved flags and positional
// arguments, so RunE closures never touch *cobra.Command directly.
type FlagGetter struct {
	flagSet *pflag.FlagSet
	Args    []string
}

// GetString returns f's resolved value, or "" if it was never set.
func (g *FlagGetter) GetString(f flags.Flag) string {
	v, _ := g.flagSet.GetString(f.Name)
	return v
}

// GetBool returns f's resolved value, or false if it was never set.
func (g *FlagGetter) GetBool(f flags.Flag) bool {
	v, _ := g.flagSet.GetBool(f.Name)
	return v
}

// Changed reports whether f was explicitly set on the command line.
func (g *FlagGetter) Changed(f flags.Flag) bool {
	return g.flagSet.Changed(f.Name)
}

// Arg returns the i'th positional argument, or "" if there aren't that
// many.
func (g *FlagGetter) Arg(i int) string {
	if i < 0 || i >= len(g.Args) {
		return ""
	}
	return g.Args[i]
}

// CommandBuilder assembles one subcommand's usage text, flags, and
// behavior into a *cobra.Command.
type CommandBuilder struct {
	Command constants.Command
	Flags   []flags.Flag
	Args    cobra.PositionalArgs
	PreRunE func(cmd *cobra.Command, args []string) error
	RunE    func(fg *FlagGetter) error
}

// Build constructs the *cobra.Command described by b.
func (b *CommandBuilder) Build() *cobra.Command {
	cmd := &cobra.Command{
		Use:     b.Command.Use,
		Short:   b.Command.Short,
		Long:    b.Command.Long,
		Example: b.Command.Example,
		Args:    b.Args,
		PreRunE: b.PreRunE,
	}
	if b.RunE != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			return b.RunE(&FlagGetter{flagSet: cmd.Flags(), Args: args})
		}
	}
	flags.AddFlags(cmd, b.Flags...)
	return cmd
}
