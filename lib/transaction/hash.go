// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package transaction

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bureau-foundation/txcodec/lib/entity"
)

// HashSize is the length of a SHA3-256 digest.
const HashSize = 32

// Hash is a SHA3-256 digest.
type Hash [HashSize]byte

func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// EntityHash returns the SHA3-256 digest of an entity's encoding.
func EntityHash(transaction *entity.Entity) (Hash, error) {
	encoded, err := transaction.Serialize()
	if err != nil {
		return Hash{}, err
	}
	return sha3.Sum256(encoded), nil
}

// TransactionsHash returns the Merkle root over the entity hashes of
// transactions. Each level hashes adjacent pairs; a level with an odd
// number of nodes pairs its last node with itself. A single
// transaction's root is its entity hash, and no transactions yield
// the zero hash.
func TransactionsHash(transactions []*entity.Entity) (Hash, error) {
	level := make([]Hash, len(transactions))
	for i, transaction := range transactions {
		hash, err := EntityHash(transaction)
		if err != nil {
			return Hash{}, fmt.Errorf("hashing transaction %d: %w", i, err)
		}
		level[i] = hash
	}
	return merkleRoot(level), nil
}

func merkleRoot(level []Hash) Hash {
	if len(level) == 0 {
		return Hash{}
	}
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]Hash, len(level)/2)
		for i := range next {
			hasher := sha3.New256()
			hasher.Write(level[2*i][:])
			hasher.Write(level[2*i+1][:])
			copy(next[i][:], hasher.Sum(nil))
		}
		level = next
	}
	return level[0]
}
