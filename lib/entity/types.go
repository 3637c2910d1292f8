// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HeaderSize is the encoded size of the entity header.
const HeaderSize = 36

// Type is the two-byte body discriminator.
type Type uint16

// Name returns the registered name of the type, or "" when the type is
// not registered.
func (t Type) Name() string {
	binding, err := Resolve(t)
	if err != nil {
		return ""
	}
	return binding.Name
}

func (t Type) String() string {
	if name := t.Name(); name != "" {
		return fmt.Sprintf("%s (0x%04x)", name, uint16(t))
	}
	return fmt.Sprintf("0x%04x", uint16(t))
}

// NetworkType identifies the network an entity belongs to. It is the
// first byte of every address on that network.
type NetworkType uint8

const (
	Mainnet NetworkType = 0x68
	Testnet NetworkType = 0x98
)

func (n NetworkType) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	}
	return fmt.Sprintf("network(0x%02x)", uint8(n))
}

// ParseNetwork accepts "mainnet" or "testnet" (case-insensitive).
func ParseNetwork(name string) (NetworkType, error) {
	switch strings.ToLower(name) {
	case "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	}
	return 0, fmt.Errorf("unknown network %q (expected mainnet or testnet)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (n NetworkType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NetworkType) UnmarshalText(text []byte) error {
	parsed, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// PublicKey is a 32-byte account public key.
type PublicKey [32]byte

func (k PublicKey) String() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// ParsePublicKey decodes a 64-character hex public key.
func ParsePublicKey(text string) (PublicKey, error) {
	var key PublicKey
	decoded, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return key, fmt.Errorf("parsing public key: %w", err)
	}
	if len(decoded) != len(key) {
		return key, fmt.Errorf("public key is %d bytes, want %d", len(decoded), len(key))
	}
	copy(key[:], decoded)
	return key, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
