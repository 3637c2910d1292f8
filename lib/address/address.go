// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"bytes"
	"encoding/base32"
	"fmt"
	"strings"

	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/bureau-foundation/txcodec/lib/entity"
)

const (
	// Size is the decoded address length.
	Size = 24

	// EncodedSize is the length of the text form.
	EncodedSize = 39

	checksumSize = 3
	digestSize   = Size - checksumSize
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address is a decoded account address.
type Address [Size]byte

// FromPublicKey derives the address of key on network.
func FromPublicKey(network entity.NetworkType, key entity.PublicKey) Address {
	keyDigest := sha3.Sum256(key[:])
	hasher := ripemd160.New()
	hasher.Write(keyDigest[:])

	var address Address
	address[0] = byte(network)
	copy(address[1:digestSize], hasher.Sum(nil))
	copy(address[digestSize:], checksum(address[:digestSize]))
	return address
}

func checksum(prefix []byte) []byte {
	digest := sha3.Sum256(prefix)
	return digest[:checksumSize]
}

// FromBytes copies a 24-byte slice into an Address without validating
// the checksum.
func FromBytes(data []byte) (Address, error) {
	var address Address
	if len(data) != Size {
		return address, fmt.Errorf("address is %d bytes, want %d", len(data), Size)
	}
	copy(address[:], data)
	return address, nil
}

// Parse decodes the text form and verifies the checksum. Dashes and
// surrounding whitespace are ignored and letters may be lowercase.
func Parse(text string) (Address, error) {
	var address Address
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), "-", ""))
	if len(normalized) != EncodedSize {
		return address, fmt.Errorf("address %q has %d characters, want %d", text, len(normalized), EncodedSize)
	}
	decoded, err := encoding.DecodeString(normalized)
	if err != nil {
		return address, fmt.Errorf("decoding address %q: %w", text, err)
	}
	// The last character carries three unused bits; only the encoding
	// with those bits clear is accepted, so each address has one text
	// form.
	if encoding.EncodeToString(decoded) != normalized {
		return address, fmt.Errorf("address %q is not canonically encoded", text)
	}
	copy(address[:], decoded)
	if !address.Valid() {
		return address, fmt.Errorf("address %q has an invalid checksum", text)
	}
	return address, nil
}

// Network returns the network byte.
func (a Address) Network() entity.NetworkType {
	return entity.NetworkType(a[0])
}

// Valid reports whether the checksum matches.
func (a Address) Valid() bool {
	return bytes.Equal(a[digestSize:], checksum(a[:digestSize]))
}

// IsZero reports whether every byte is zero.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return encoding.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
