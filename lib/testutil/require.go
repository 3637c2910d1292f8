// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

// TB is the subset of testing.TB the helpers use.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// DecodeHex decodes a hex literal, ignoring whitespace and '|'
// separators:
//
//	data := testutil.DecodeHex(t, "5441 | 02 | 6869")
func DecodeHex(t TB, text string) []byte {
	t.Helper()
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '|' {
			return -1
		}
		return r
	}, text)
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		t.Fatalf("invalid hex literal %q: %v", text, err)
	}
	return data
}

// RequireErrorAs fails the test unless err wraps an error of type E,
// and returns that error.
//
//	truncated := testutil.RequireErrorAs[*wire.TruncatedInputError](t, err)
func RequireErrorAs[E error](t TB, err error) E {
	t.Helper()
	var target E
	if !errors.As(err, &target) {
		t.Fatalf("error %v does not wrap %T", err, target)
	}
	return target
}
