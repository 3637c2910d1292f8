// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Stdin is where [ReadInput] reads when no path is given.
var Stdin io.Reader = os.Stdin

// ReadInput reads path, or [Stdin] when path is "" or "-". With
// hexText set the input is hex: whitespace and an optional "0x"
// prefix are ignored. At most limit bytes are accepted when limit is
// positive; for hex input the limit applies to the decoded bytes.
func ReadInput(path string, hexText bool, limit int) ([]byte, error) {
	var reader io.Reader = Stdin
	name := "stdin"
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader, name = file, path
	}

	readLimit := limit
	if hexText && limit > 0 {
		// Two digits per byte, plus generous room for whitespace.
		readLimit = limit*4 + 64
	}
	if readLimit > 0 {
		reader = io.LimitReader(reader, int64(readLimit)+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if readLimit > 0 && len(data) > readLimit {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, limit)
	}
	if hexText {
		if data, err = DecodeHex(string(data)); err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
	}
	if limit > 0 && len(data) > limit {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, limit)
	}
	return data, nil
}

// DecodeHex decodes hex text, ignoring whitespace and a leading "0x".
func DecodeHex(text string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "0x"), "0X")
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}
