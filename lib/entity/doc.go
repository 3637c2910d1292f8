// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package entity composes a fixed header with a type-specific body to
// form a complete transaction record.
//
// Every entity starts with the same 36-byte header:
//
//	offset  size  field
//	0       32    signer public key
//	32      1     version
//	33      1     network
//	34      2     type (little-endian)
//	36      ...   body
//
// The type field selects the body layout. Body decoders are bound to
// types in a process-wide registry, populated by the packages that
// define bodies (see lib/transaction) from their init functions.
// Decoding reads the header, resolves the type, and fails with a
// [registry.UnknownTypeError] before touching any body byte when the
// type is not registered.
//
// Entities are immutable. [New] validates the body against the
// registry; [Load] and [Decode] build entities from bytes. An entity's
// size is always HeaderSize plus its body's size, and encoding an
// entity is the header followed by the body's encoding.
//
// [Codec] adapts entities to layout.Codec so that container bodies
// (aggregates) can hold arrays of embedded entities. With Embedded set
// it refuses body types not registered as embeddable, which keeps
// containers from nesting and bounds decode depth.
package entity
