// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import "fmt"

// Kind identifies how a field is laid out on the wire.
type Kind uint8

const (
	// KindScalar is a fixed-width little-endian unsigned integer.
	KindScalar Kind = iota + 1

	// KindFixed is a fixed-length opaque byte run (keys, addresses,
	// hashes).
	KindFixed

	// KindSize is an integer holding the element count or byte length
	// of a later field. Derived on encode.
	KindSize

	// KindReserved is zero padding of a fixed width.
	KindReserved

	// KindStruct is a single nested value encoded by another codec.
	KindStruct

	// KindArray is a sequence of elements whose count is held by a
	// paired size field.
	KindArray

	// KindSizedArray is a sequence of elements whose total byte size,
	// including per-element alignment padding, is held by a paired
	// size field.
	KindSizedArray

	// KindBuffer is raw bytes whose length is held by a paired size
	// field.
	KindBuffer
)

var kindNames = map[Kind]string{
	KindScalar:     "scalar",
	KindFixed:      "fixed",
	KindSize:       "size",
	KindReserved:   "reserved",
	KindStruct:     "struct",
	KindArray:      "array",
	KindSizedArray: "sized_array",
	KindBuffer:     "buffer",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// sequence reports whether fields of this kind hold elements.
func (k Kind) sequence() bool {
	return k == KindArray || k == KindSizedArray
}

// measured reports whether fields of this kind need a paired size
// field.
func (k Kind) measured() bool {
	return k == KindArray || k == KindSizedArray || k == KindBuffer
}
