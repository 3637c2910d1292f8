// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "txcodec",
		Subcommands: []*Command{
			{Name: "version", Run: func(args []string) error {
				called = "version"
				return nil
			}},
			{
				Name: "capture",
				Subcommands: []*Command{
					{Name: "list", Run: func(args []string) error {
						called = "capture list"
						receivedArgs = args
						return nil
					}},
				},
			},
		},
	}

	if err := root.Execute([]string{"capture", "list", "traffic.txcapt"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "capture list" {
		t.Errorf("dispatched to %q, want %q", called, "capture list")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "traffic.txcapt" {
		t.Errorf("args = %v, want [traffic.txcapt]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var params struct {
		Hex bool `flag:"hex" desc:"hex input"`
	}
	var file string

	command := &Command{
		Name:  "decode",
		Flags: func() *pflag.FlagSet { return FlagsFromParams("decode", &params) },
		Run: func(args []string) error {
			if len(args) > 0 {
				file = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--hex", "entity.hex"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !params.Hex {
		t.Error("Hex = false, want true")
	}
	if file != "entity.hex" {
		t.Errorf("file = %q, want %q", file, "entity.hex")
	}
}

func TestCommand_Execute_Suggestions(t *testing.T) {
	captureOutput(t)

	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.Bool("json", false, "")
			flagSet.Bool("cbor", false, "")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}
	root := &Command{
		Name:        "txcodec",
		Subcommands: []*Command{command, {Name: "verify"}, {Name: "version"}},
	}

	tests := []struct {
		name    string
		args    []string
		want    string
		suggest bool
	}{
		{"flag typo", []string{"decode", "--jsno"}, "did you mean --json", true},
		{"distant flag", []string{"decode", "--zzzzzzzz"}, "--help", false},
		{"command typo", []string{"decdoe"}, `did you mean "decode"`, true},
		{"distant command", []string{"zzzzzzzz"}, "unknown command", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := root.Execute(test.args)
			if err == nil {
				t.Fatal("Execute() = nil, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want %q", err, test.want)
			}
			if !test.suggest && strings.Contains(err.Error(), "did you mean") {
				t.Errorf("error = %q, should not suggest", err)
			}
		})
	}
}

func TestCommand_Execute_HelpAndMissingSubcommand(t *testing.T) {
	_, stderr := captureOutput(t)
	root := &Command{
		Name:        "txcodec",
		Summary:     "Binary transaction codec",
		Subcommands: []*Command{{Name: "decode", Summary: "Decode an entity"}},
	}

	for _, helpArg := range []string{"-h", "--help", "help"} {
		if err := root.Execute([]string{helpArg}); err != nil {
			t.Errorf("Execute(%q) error: %v", helpArg, err)
		}
	}
	if !strings.Contains(stderr.String(), "Decode an entity") {
		t.Errorf("help not written to Stderr: %q", stderr.String())
	}

	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %v, want 'subcommand required'", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "txcodec",
		Description: "Encode, decode and inspect binary transactions.",
		Subcommands: []*Command{
			{Name: "decode", Summary: "Decode an entity and print its fields"},
			{Name: "verify", Summary: "Run conformance vectors"},
		},
		Examples: []Example{
			{Description: "Decode hex from stdin", Command: "txcodec decode --hex -"},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Encode, decode and inspect binary transactions.",
		"Usage:",
		"txcodec <command> [flags]",
		"Commands:",
		"decode",
		"Run conformance vectors",
		"Examples:",
		"# Decode hex from stdin",
		"txcodec decode --hex -",
		"Run 'txcodec <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}
