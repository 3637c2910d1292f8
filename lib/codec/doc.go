// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration used for
// machine-readable output of decoded transactions.
//
// The binary transaction format itself is described by lib/layout.
// CBOR is the secondary format: decoded field trees (layout.Node) and
// summaries are emitted as CBOR by `txcodec decode --cbor` so that
// downstream tools get a compact, self-describing document. The
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. The
// same decoded transaction always produces identical bytes.
//
//	data, err := codec.Marshal(node)
//	err = codec.Unmarshal(data, &node)
//
// Types implementing encoding.TextMarshaler (addresses, public keys,
// network types) are written as CBOR text strings.
//
// Struct types use json tags; fxamacker/cbor falls back to them when
// no cbor tag is present, so the same types serve --json and --cbor.
package codec
