// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/bureau-foundation/txcodec/lib/config"
)

// ConfigFlag is embedded in params structs of commands that read the
// txcodec configuration.
type ConfigFlag struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to txcodec.yaml (default: $TXCODEC_CONFIG, then built-in defaults)"`
}

// Load resolves the configuration and builds the command logger from
// its log level.
func (c *ConfigFlag) Load(command string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(c.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := NewCommandLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.With("command", command), nil
}
