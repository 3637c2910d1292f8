// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the txcodec binary.
//
// A [Command] tree dispatches on the first positional argument, parses
// flags with pflag and suggests the closest command or flag name on a
// typo. Command parameters are plain structs whose tagged fields
// become flags through [FlagsFromParams]; embedding [JSONOutput] adds
// --json. [NewCommandLogger] returns the slog logger commands log
// through, and [ReadInput] reads a command's binary input from a file
// or stdin, as raw bytes or hex text.
//
// Output goes to [Stdout] and help to [Stderr] so tests can capture
// both.
package cli
