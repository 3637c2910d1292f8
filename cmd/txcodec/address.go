// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/txcodec/cmd/txcodec/cli"
	"github.com/bureau-foundation/txcodec/lib/address"
	"github.com/bureau-foundation/txcodec/lib/entity"
)

type addressResult struct {
	Address string             `json:"address"`
	Network entity.NetworkType `json:"network"`
	Hex     string             `json:"hex"`
}

func newAddressResult(decoded address.Address) addressResult {
	return addressResult{
		Address: decoded.String(),
		Network: decoded.Network(),
		Hex:     strings.ToUpper(hex.EncodeToString(decoded[:])),
	}
}

func (r addressResult) write() error {
	_, err := fmt.Fprintf(cli.Stdout, "%s\n  network: %s\n  hex:     %s\n", r.Address, r.Network, r.Hex)
	return err
}

func addressCommand() *cli.Command {
	return &cli.Command{
		Name:    "address",
		Summary: "Derive and parse account addresses",
		Subcommands: []*cli.Command{
			addressDeriveCommand(),
			addressParseCommand(),
		},
	}
}

type addressDeriveParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	PublicKey string `flag:"public-key" desc:"account public key (64 hex digits)"`
	Network   string `flag:"network" desc:"mainnet or testnet (default: configured network)"`
}

func addressDeriveCommand() *cli.Command {
	var params addressDeriveParams
	return &cli.Command{
		Name:    "derive",
		Summary: "Derive the address of a public key",
		Usage:   "txcodec address derive --public-key KEY [--network NETWORK]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("derive", &params)
		},
		Run: func(args []string) error {
			cfg, _, err := params.Load("address/derive")
			if err != nil {
				return err
			}
			networkName := params.Network
			if networkName == "" {
				networkName = cfg.Network
			}
			network, err := entity.ParseNetwork(networkName)
			if err != nil {
				return err
			}
			key, err := entity.ParsePublicKey(params.PublicKey)
			if err != nil {
				return err
			}
			result := newAddressResult(address.FromPublicKey(network, key))
			if done, err := params.EmitJSON(result); done {
				return err
			}
			return result.write()
		},
	}
}

type addressParseParams struct {
	cli.JSONOutput
}

func addressParseCommand() *cli.Command {
	var params addressParseParams
	return &cli.Command{
		Name:    "parse",
		Summary: "Validate an address and show its parts",
		Usage:   "txcodec address parse ADDRESS",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("parse", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("address parse takes one address, got %d arguments", len(args))
			}
			decoded, err := address.Parse(args[0])
			if err != nil {
				return err
			}
			result := newAddressResult(decoded)
			if done, err := params.EmitJSON(result); done {
				return err
			}
			return result.write()
		},
	}
}
