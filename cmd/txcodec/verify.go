// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/txcodec/cmd/txcodec/cli"
	"github.com/bureau-foundation/txcodec/lib/vectors"
)

type verifyParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	NoDefault bool `flag:"no-default" desc:"skip the built-in corpus; run only the named files"`
}

type verifyResult struct {
	Name   string       `json:"name"`
	Kind   vectors.Kind `json:"kind"`
	Passed bool         `json:"passed"`
	Error  string       `json:"error,omitempty"`
}

func verifyCommand() *cli.Command {
	var params verifyParams
	return &cli.Command{
		Name:    "verify",
		Summary: "Run conformance vectors",
		Description: `Run the built-in conformance vectors, plus any vector files named on
the command line. Exits 1 when a vector fails.`,
		Usage: "txcodec verify [flags] [vectors.yaml...]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Run: func(args []string) error {
			return runVerify(args, &params)
		},
	}
}

func runVerify(paths []string, params *verifyParams) error {
	_, logger, err := params.Load("verify")
	if err != nil {
		return err
	}

	var sets []*vectors.Set
	if !params.NoDefault {
		set, err := vectors.Default()
		if err != nil {
			return err
		}
		sets = append(sets, set)
	}
	for _, path := range paths {
		set, err := vectors.LoadFile(path)
		if err != nil {
			return err
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		return fmt.Errorf("no vectors to run: pass files or drop --no-default")
	}
	merged, err := vectors.Merge(sets...)
	if err != nil {
		return err
	}

	results := vectors.Run(merged)
	failed := len(vectors.Failures(results))
	logger.Info("ran conformance vectors", "total", len(results), "failed", failed)

	report := make([]verifyResult, len(results))
	for i, result := range results {
		report[i] = verifyResult{Name: result.Name, Kind: result.Kind, Passed: result.Passed()}
		if result.Err != nil {
			report[i].Error = result.Err.Error()
		}
	}
	done, err := params.EmitJSON(report)
	if !done {
		for _, line := range report {
			if line.Passed {
				fmt.Fprintf(cli.Stdout, "PASS  %s\n", line.Name)
			} else {
				fmt.Fprintf(cli.Stdout, "FAIL  %s: %s\n", line.Name, line.Error)
			}
		}
		fmt.Fprintf(cli.Stdout, "\n%d vectors, %d failed\n", len(report), failed)
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
