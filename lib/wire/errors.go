// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
)

// RangeError reports a value that does not fit the width of the field
// it is being encoded into. Width is in bytes.
type RangeError struct {
	Value uint64
	Width int
	Max   uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %d does not fit in %d bytes (max %d)", e.Value, e.Width, e.Max)
}

// TruncatedInputError reports input that ended before a read could be
// satisfied. Offset is the absolute position of the failed read within
// the original buffer.
type TruncatedInputError struct {
	Offset    int
	Need      int
	Available int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Available)
}

// LimitError reports input that exceeds a ceiling set through
// [Limits]. What names the ceiling ("input bytes", "elements").
type LimitError struct {
	What  string
	Value int
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s %d exceeds limit %d", e.What, e.Value, e.Limit)
}

// IsTruncated reports whether err (or anything it wraps) is a
// [TruncatedInputError].
func IsTruncated(err error) bool {
	var target *TruncatedInputError
	return errors.As(err, &target)
}

// IsRange reports whether err (or anything it wraps) is a [RangeError].
func IsRange(err error) bool {
	var target *RangeError
	return errors.As(err, &target)
}

// IsLimit reports whether err (or anything it wraps) is a [LimitError].
func IsLimit(err error) bool {
	var target *LimitError
	return errors.As(err, &target)
}
