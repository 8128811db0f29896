// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/outboundlabs/imacs/internal/logging"
	"github.com/outboundlabs/imacs/pkg/cli/common/config"
	"github.com/outboundlabs/imacs/pkg/cli/core/root"
)

func main() {
	bootLogger := logging.New(logging.Config{Level: "info", Format: "text"})

	cfg := config.DefaultConfig()
	rootCmd := root.BuildRootCmd(cfg)
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		bootLogger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
