// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/txcodec/cmd/txcodec/cli"
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/transaction"
)

// HeaderParams are the entity header flags shared by the encode
// subcommands.
type HeaderParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Signer  string `flag:"signer" desc:"signer public key (64 hex digits)"`
	Network string `flag:"network" desc:"mainnet or testnet (default: configured network)"`
}

type encodeParams struct {
	HeaderParams
	Request string `flag:"request" desc:"JSONC request file describing the entity"`
}

type transferParams struct {
	HeaderParams
	Recipient  string   `flag:"recipient" desc:"recipient address (base32, or 48 hex digits)"`
	Mosaics    []string `flag:"mosaic" desc:"mosaic as HEXID:AMOUNT; repeat for several"`
	Message    string   `flag:"message" desc:"message text"`
	MessageHex string   `flag:"message-hex" desc:"message bytes as hex"`
}

type votingKeyLinkParams struct {
	HeaderParams
	LinkedKey  string `flag:"linked-key" desc:"linked voting public key (64 hex digits)"`
	StartEpoch uint32 `flag:"start-epoch" desc:"first epoch of the link"`
	EndEpoch   uint32 `flag:"end-epoch" desc:"last epoch of the link"`
	Action     string `flag:"action" desc:"link or unlink" default:"link"`
}

// encodeResult is the --json output of the encode commands.
type encodeResult struct {
	Type string `json:"type"`
	Size int    `json:"size"`
	Hash string `json:"hash"`
	Hex  string `json:"hex"`
}

func encodeCommand() *cli.Command {
	var params encodeParams
	return &cli.Command{
		Name:    "encode",
		Summary: "Build an entity and print its encoding",
		Description: `Build an entity from flags (one subcommand per body type) or from a
JSONC request file, which can also describe aggregates, and print
its encoding as hex.`,
		Usage: "txcodec encode <transfer|voting-key-link> [flags]\n  txcodec encode --request FILE [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Subcommands: []*cli.Command{
			encodeTransferCommand(),
			encodeVotingKeyLinkCommand(),
		},
		Examples: []cli.Example{
			{Description: "Encode an aggregate described in a file", Command: "txcodec encode --request payroll.jsonc --json"},
		},
		Run: func(args []string) error {
			if params.Request == "" {
				return fmt.Errorf("encode needs a subcommand or --request\n\nRun 'txcodec encode --help' for usage.")
			}
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments %v", args)
			}
			request, err := loadRequest(params.Request)
			if err != nil {
				return err
			}
			// Header flags override the file.
			if params.Signer != "" {
				request.Signer = params.Signer
			}
			if params.Network != "" {
				request.Network = params.Network
			}
			return emitRequest(request, &params.HeaderParams, "encode/request")
		},
	}
}

func encodeTransferCommand() *cli.Command {
	var params transferParams
	return &cli.Command{
		Name:    "transfer",
		Summary: "Encode a transfer",
		Usage:   "txcodec encode transfer --signer KEY --recipient ADDRESS [--mosaic ID:AMOUNT]... [--message TEXT]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("transfer", &params)
		},
		Run: func(args []string) error {
			request := &entityRequest{
				Signer:  params.Signer,
				Network: params.Network,
				Type:    "transfer",
				Transfer: &transferRequest{
					Recipient:  params.Recipient,
					Message:    params.Message,
					MessageHex: params.MessageHex,
				},
			}
			for _, text := range params.Mosaics {
				mosaic, err := parseMosaicFlag(text)
				if err != nil {
					return err
				}
				request.Transfer.Mosaics = append(request.Transfer.Mosaics, mosaic)
			}
			return emitRequest(request, &params.HeaderParams, "encode/transfer")
		},
	}
}

func encodeVotingKeyLinkCommand() *cli.Command {
	var params votingKeyLinkParams
	return &cli.Command{
		Name:    "voting-key-link",
		Summary: "Encode a voting key link",
		Usage:   "txcodec encode voting-key-link --signer KEY --linked-key KEY --start-epoch N --end-epoch N [--action link|unlink]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("voting-key-link", &params)
		},
		Run: func(args []string) error {
			request := &entityRequest{
				Signer:  params.Signer,
				Network: params.Network,
				Type:    "voting_key_link",
				VotingKeyLink: &votingKeyLinkRequest{
					LinkedPublicKey: params.LinkedKey,
					StartEpoch:      params.StartEpoch,
					EndEpoch:        params.EndEpoch,
					Action:          params.Action,
				},
			}
			return emitRequest(request, &params.HeaderParams, "encode/voting-key-link")
		},
	}
}

func emitRequest(request *entityRequest, params *HeaderParams, command string) error {
	cfg, logger, err := params.Load(command)
	if err != nil {
		return err
	}
	network, err := entity.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	built, err := request.build(network)
	if err != nil {
		return err
	}
	encoded, err := built.Serialize()
	if err != nil {
		return err
	}
	hash, err := transaction.EntityHash(built)
	if err != nil {
		return err
	}
	logger.Debug("encoded entity", "type", built.Type().String(), "size", len(encoded), "hash", hash.String())

	result := encodeResult{
		Type: built.Type().Name(),
		Size: len(encoded),
		Hash: hash.String(),
		Hex:  strings.ToUpper(hex.EncodeToString(encoded)),
	}
	if done, err := params.EmitJSON(result); done {
		return err
	}
	_, err = fmt.Fprintln(cli.Stdout, result.Hex)
	return err
}
