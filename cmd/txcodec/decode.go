// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/txcodec/cmd/txcodec/cli"
	"github.com/bureau-foundation/txcodec/lib/codec"
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

type decodeParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Hex        bool `flag:"hex" desc:"input is hex text instead of raw bytes"`
	CBOR       bool `flag:"cbor" desc:"write the field tree as CBOR"`
	Diagnostic bool `flag:"diagnostic" desc:"write the field tree as CBOR diagnostic notation"`
}

func decodeCommand() *cli.Command {
	var params decodeParams
	return &cli.Command{
		Name:    "decode",
		Summary: "Decode an entity and print its field tree",
		Description: `Decode one entity from a file (or stdin) and print every field with
its offset, size and value. The input must hold exactly one entity.
Aggregates have their transactions hash recomputed and checked.`,
		Usage: "txcodec decode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("decode takes at most one file, got %d", len(args))
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runDecode(path, &params)
		},
	}
}

func runDecode(path string, params *decodeParams) error {
	cfg, logger, err := params.Load("decode")
	if err != nil {
		return err
	}
	limits := wire.Limits{MaxInputBytes: cfg.Limits.MaxInputBytes, MaxElements: cfg.Limits.MaxElements}

	data, err := cli.ReadInput(path, params.Hex, limits.MaxInputBytes)
	if err != nil {
		return err
	}
	decoded, consumed, err := entity.LoadWithLimits(data, limits)
	if err != nil {
		return err
	}
	if consumed != len(data) {
		return fmt.Errorf("%d trailing bytes after the %d-byte entity", len(data)-consumed, consumed)
	}
	logger.Debug("decoded entity", "type", decoded.Type().String(), "size", consumed)

	if err := verifyBody(decoded.Body()); err != nil {
		return err
	}

	tree, err := decoded.Describe(0)
	if err != nil {
		return err
	}

	switch {
	case params.CBOR:
		return codec.NewEncoder(cli.Stdout).Encode(tree)
	case params.Diagnostic:
		encoded, err := codec.Marshal(tree)
		if err != nil {
			return err
		}
		notation, err := codec.Diagnose(encoded)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cli.Stdout, notation)
		return err
	}
	if done, err := params.EmitJSON(tree); done {
		return err
	}
	return tree.WriteText(cli.Stdout)
}

// verifyBody checks digests a body carries over its own contents.
func verifyBody(body entity.Body) error {
	if verifier, ok := body.(interface{ VerifyTransactionsHash() error }); ok {
		return verifier.VerifyTransactionsHash()
	}
	return nil
}
