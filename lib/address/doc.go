// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package address derives and parses 24-byte account addresses.
//
// An address is the network byte, the RIPEMD-160 digest of the SHA3-256
// digest of the account public key, and a 3-byte checksum (the first
// bytes of SHA3-256 over the preceding 21 bytes). The text form is the
// 39-character unpadded base32 encoding, so mainnet addresses start
// with 'N' and testnet addresses with 'T'.
package address
