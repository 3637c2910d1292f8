// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package transaction defines the concrete transaction bodies and
// registers them with lib/entity. Importing this package (even for
// side effects) makes entities of these types decodable:
//
//	import _ "github.com/bureau-foundation/txcodec/lib/transaction"
//
// Registered types:
//
//	0x4154  transfer            recipient, mosaics, message
//	0x4143  voting_key_link     voting key and epoch range
//	0x4141  aggregate_complete  embedded transactions
//	0x4241  aggregate_bonded    embedded transactions
//
// Transfer and voting key link bodies are embeddable; aggregates hold
// them in an 8-byte aligned payload and are never embedded themselves.
// Each body type wraps a layout.Value, so size and encoding are fixed
// at construction and the typed getters return copies.
package transaction
