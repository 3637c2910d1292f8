// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/txcodec/cmd/txcodec/cli"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own report (like verify) return an
		// ExitError carrying the exit code; no extra "error:" line.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return root().Execute(os.Args[1:])
}

func root() *cli.Command {
	return &cli.Command{
		Name:    "txcodec",
		Summary: "Encode, decode and inspect binary transactions",
		Description: `txcodec encodes, decodes and inspects binary transaction entities.

Entities are a fixed header (signer key, version, network, type)
followed by a type-specific body. Decoding validates every length and
count against the input and the configured limits before reading.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			addressCommand(),
			verifyCommand(),
			captureCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{Description: "Decode a hex entity from stdin", Command: "echo 3B6A... | txcodec decode --hex"},
			{Description: "Encode a transfer", Command: "txcodec encode transfer --signer 3B6A... --recipient TB6Q... --mosaic 6BED913FA20223F8:1000000"},
			{Description: "Run the conformance vectors", Command: "txcodec verify"},
		},
	}
}
