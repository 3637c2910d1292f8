// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire provides the primitive codecs every transaction layout
// is built from: fixed-width little-endian unsigned integers and raw
// byte runs, plus a [Cursor] that tracks the read position over an
// immutable input buffer.
//
// Encoding functions are pure and append-oriented:
//
//	buffer, err := wire.AppendUint(buffer, 0x4154, 2)
//
// Decoding goes through a cursor owned by a single decode call. The
// cursor never hands out slices that alias the input: [Cursor.ReadBytes]
// copies, so decoded values outlive the buffer they came from.
//
//	cursor := wire.NewCursor(data)
//	kind, err := cursor.ReadUint(2)
//
// Errors are typed so callers can distinguish malformed input
// ([TruncatedInputError]) from values that do not fit their declared
// width ([RangeError]) and from caller-imposed ceilings ([LimitError]).
// Use [IsTruncated], [IsRange] and [IsLimit] rather than type
// assertions; they see through wrapping.
package wire
