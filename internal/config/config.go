// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// envPrefix is the environment variable prefix for all imacs settings.
// IMACS__CODEGEN__OUT_DIR -> codegen.out_dir.
const envPrefix = "IMACS"

// Config is the top-level configuration structure for the imacs CLI.
type Config struct {
	Logging      LoggingConfig      `koanf:"logging"`
	Codegen      CodegenConfig      `koanf:"codegen"`
	Completeness CompletenessConfig `koanf:"completeness"`
}

// Defaults returns the default top-level configuration.
func Defaults() Config {
	return Config{
		Logging:      LoggingDefaults(),
		Codegen:      CodegenDefaults(),
		Completeness: CompletenessDefaults(),
	}
}

// Validate validates the full configuration tree and implements Validator
// so UnmarshalAndValidate runs it automatically.
func (c *Config) Validate() error {
	var errs ValidationErrors
	errs = append(errs, c.Logging.Validate(NewPath("logging"))...)
	errs = append(errs, c.Codegen.Validate(NewPath("codegen"))...)
	errs = append(errs, c.Completeness.Validate(NewPath("completeness"))...)
	return errs.OrNil()
}

// Load builds the layered configuration (defaults < config file < env vars
// < flags) and unmarshals + validates it into a Config.
func Load(configPath string, flags *pflag.FlagSet, flagMappings map[string]string, opts ...Option) (*Config, error) {
	loader := NewLoader(envPrefix, opts...)

	if err := loader.LoadWithDefaults(Defaults(), configPath); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flags != nil {
		if err := loader.LoadFlags(flags, flagMappings); err != nil {
			return nil, fmt.Errorf("applying flag overrides: %w", err)
		}
	}

	var cfg Config
	if err := loader.UnmarshalAndValidate("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
