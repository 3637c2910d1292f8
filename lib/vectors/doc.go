// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package vectors loads and runs conformance vectors for the wire
// format.
//
// A vector file is YAML:
//
//	vectors:
//	  - name: transfer-minimal
//	    kind: body
//	    type: transfer
//	    hex: 000000...6869
//	    size: 34
//
// Kinds are "uint" (a primitive integer of the given width and value),
// "body" (a registered body named by type, without the entity header)
// and "entity" (header plus body). A vector with an error field is
// negative: decoding (or for "uint", encoding) must fail with that kind
// of error. A positive vector must decode, consume exactly its input,
// report the declared size, re-serialize to the identical bytes and
// fail with a truncation error on every strict prefix.
//
// The default corpus is embedded from corpus/*.yaml and runs in this
// package's tests and from "txcodec verify". Importing this package
// registers the transaction bodies.
package vectors
