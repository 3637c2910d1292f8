// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entity.bin")
	if err := os.WriteFile(path, []byte{0x54, 0x41, 0x00}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	hexPath := filepath.Join(t.TempDir(), "entity.hex")
	if err := os.WriteFile(hexPath, []byte("0x5441\n  00\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	previous := Stdin
	t.Cleanup(func() { Stdin = previous })

	tests := []struct {
		name  string
		path  string
		stdin string
		hex   bool
		limit int
		want  []byte
		err   string
	}{
		{name: "binary file", path: path, want: []byte{0x54, 0x41, 0x00}},
		{name: "hex file", path: hexPath, hex: true, want: []byte{0x54, 0x41, 0x00}},
		{name: "stdin", path: "-", stdin: "5441", hex: true, want: []byte{0x54, 0x41}},
		{name: "empty path is stdin", stdin: "ab", want: []byte("ab")},
		{name: "limit", path: path, limit: 2, err: "exceeds 2 bytes"},
		{name: "hex limit counts decoded bytes", path: hexPath, hex: true, limit: 2, err: "exceeds 2 bytes"},
		{name: "bad hex", stdin: "54g1", hex: true, err: "invalid hex"},
		{name: "missing file", path: filepath.Join(t.TempDir(), "absent"), err: "no such file"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			Stdin = strings.NewReader(test.stdin)
			got, err := ReadInput(test.path, test.hex, test.limit)
			if test.err != "" {
				if err == nil || !strings.Contains(err.Error(), test.err) {
					t.Fatalf("error = %v, want %q", err, test.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadInput: %v", err)
			}
			if !bytes.Equal(got, test.want) {
				t.Errorf("ReadInput = %x, want %x", got, test.want)
			}
		})
	}
}

func TestEmitJSON(t *testing.T) {
	stdout, _ := captureOutput(t)

	var output JSONOutput
	if done, err := output.EmitJSON([]string{"ignored"}); done || err != nil {
		t.Fatalf("EmitJSON without --json = %v, %v", done, err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("wrote %q without --json", stdout.String())
	}

	output.OutputJSON = true
	var entries []string
	if done, err := output.EmitJSON(entries); !done || err != nil {
		t.Fatalf("EmitJSON = %v, %v", done, err)
	}
	var decoded []string
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "[]" {
		t.Errorf("nil slice written as %q, want []", stdout.String())
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		if _, err := ParseLevel(level); err != nil {
			t.Errorf("ParseLevel(%q): %v", level, err)
		}
	}
	if _, err := NewCommandLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
