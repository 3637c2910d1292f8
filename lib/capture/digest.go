// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a BLAKE3 keyed hash of a capture payload.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// payloadDomainKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it invalidates every existing capture.
var payloadDomainKey = [32]byte{
	't', 'x', 'c', 'o', 'd', 'e', 'c', '.', 'c', 'a', 'p', 't', 'u', 'r', 'e', '.',
	'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// PayloadDigest computes the digest of an uncompressed payload.
func PayloadDigest(payload []byte) Digest {
	// NewKeyed only fails on a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		panic("capture: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}
