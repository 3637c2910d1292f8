// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the txcodec
// command.
//
// Configuration is loaded from a single file specified by either the
// TXCODEC_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). [Resolve] picks between them, in that order of
// precedence after an explicit path, and falls back to [Default] when
// neither is set. There is no ~/.config discovery and no automatic file
// search.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variables override config values.
//
// Key exports:
//
//   - [Config] -- network, decode limits, capture and log settings
//   - [Default] -- returns a Config with built-in defaults
//   - [Load], [LoadFile], [Resolve] -- the entry points for loading
//
// This package depends on no other txcodec packages.
package config
