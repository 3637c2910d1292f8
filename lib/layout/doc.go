// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package layout describes binary record layouts as ordered field lists
// and drives size computation, encoding and decoding from those
// descriptions.
//
// A [Descriptor] is declared once, usually as a package-level variable,
// and validated at construction:
//
//	var mosaicLayout = layout.MustDescriptor("mosaic",
//		layout.Scalar("mosaic_id", 8),
//		layout.Scalar("amount", 8),
//	)
//
// Values are [Record] maps keyed by field name. Scalars are uint64,
// fixed and buffer fields are []byte, arrays are []any, nested
// structures are whatever their [Codec] produces. Every descriptor is
// itself a Codec, so descriptors nest through [Struct], [Array] and
// [SizedArray] fields.
//
// Three field kinds carry no caller data:
//
//   - Size fields are derived. On encode the value is computed from the
//     field they measure (element count, byte length, or padded byte
//     size) and any value the caller put in the record is ignored. On
//     decode the parsed value tells the measured field how much to
//     consume. A size field always precedes the field it measures.
//
//   - Reserved fields are written as zeros. The decoded value is kept
//     in the record so inspection tools can show it, and equality
//     ignores it.
//
//   - Padding inside a [SizedArray] is implicit: each element is
//     followed by zeros up to the array's alignment.
//
// The layout contract is that for any record x accepted by a
// descriptor d, d.Size(x) == len(d.Serialize(x)) and decoding those
// bytes consumes exactly d.Size(x) bytes and yields a record equal to
// x under [Descriptor.EqualValues].
//
// [Value] wraps a record that has been validated against its
// descriptor. It is immutable and carries its canonical encoding, so
// size queries and re-serialization are free.
package layout
