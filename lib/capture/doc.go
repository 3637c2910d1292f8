// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture stores batches of serialized entities in a single
// file, for recording traffic and replaying it through the decoder.
//
// A capture is a fixed 64-byte header followed by a payload:
//
//	offset  size  field
//	0       6     magic "TXCAPT"
//	6       1     format version (1)
//	7       1     reserved
//	8       1     compression tag (0 none, 1 lz4, 2 zstd)
//	9       3     reserved
//	12      4     entity count
//	16      8     created at, Unix milliseconds
//	24      4     uncompressed payload size
//	28      4     stored payload size
//	32      32    payload digest
//
// The uncompressed payload is the entries back to back, each a 4-byte
// length followed by one serialized entity. The payload digest is a
// BLAKE3 keyed hash (domain "txcodec.capture.payload") of the
// uncompressed payload, checked before any entry is decoded. When the
// requested codec does not shrink the payload it is stored
// uncompressed and the header says so.
//
// The header and entries are themselves described with lib/layout, so
// the capture format goes through the same codec machinery it stores.
package capture
