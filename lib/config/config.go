// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "TXCODEC_CONFIG"

// Config is the txcodec configuration.
type Config struct {
	// Network is the default network for commands that build entities
	// or derive addresses: "mainnet" or "testnet".
	Network string `yaml:"network"`

	// Limits bound decoding of untrusted input.
	Limits LimitsConfig `yaml:"limits"`

	// Capture configures capture file writing.
	Capture CaptureConfig `yaml:"capture"`

	// Log configures command logging.
	Log LogConfig `yaml:"log"`
}

// LimitsConfig holds decode ceilings. Zero disables a limit.
type LimitsConfig struct {
	// MaxInputBytes is the largest single entity accepted.
	// Default: 1048576
	MaxInputBytes int `yaml:"max_input_bytes"`

	// MaxElements is the largest element count any array may declare.
	// Default: 4096
	MaxElements int `yaml:"max_elements"`
}

// CaptureConfig configures capture files.
type CaptureConfig struct {
	// Compression is the payload compression for new captures:
	// "none", "lz4" or "zstd".
	// Default: zstd
	Compression string `yaml:"compression"`

	// Directory is where captures named without a directory are
	// written. Supports ${HOME} expansion.
	// Default: ${HOME}/.cache/txcodec/captures
	Directory string `yaml:"directory"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Network: "testnet",
		Limits: LimitsConfig{
			MaxInputBytes: 1 << 20,
			MaxElements:   4096,
		},
		Capture: CaptureConfig{
			Compression: "zstd",
			Directory:   filepath.Join("${HOME}", ".cache", "txcodec", "captures"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the TXCODEC_CONFIG environment
// variable. Fails when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your txcodec.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path. Values absent from the file
// keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads the file at path when it is non-empty, otherwise the
// file named by TXCODEC_CONFIG when that is set, otherwise the
// defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvironmentVariable) != "" {
		return Load()
	}
	cfg := Default()
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Capture.Directory = expandVars(c.Capture.Directory, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Network != "mainnet" && c.Network != "testnet" {
		errs = append(errs, fmt.Errorf("network must be mainnet or testnet, got %q", c.Network))
	}
	if c.Limits.MaxInputBytes < 0 {
		errs = append(errs, fmt.Errorf("limits.max_input_bytes must not be negative"))
	}
	if c.Limits.MaxElements < 0 {
		errs = append(errs, fmt.Errorf("limits.max_elements must not be negative"))
	}
	if !slices.Contains([]string{"none", "lz4", "zstd"}, c.Capture.Compression) {
		errs = append(errs, fmt.Errorf("capture.compression must be none, lz4 or zstd, got %q", c.Capture.Compression))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
