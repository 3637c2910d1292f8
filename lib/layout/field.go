// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

// Field describes one field of a [Descriptor]. Construct fields with
// the helper functions below rather than by hand; [NewDescriptor]
// rejects inconsistent combinations either way.
type Field struct {
	Name string
	Kind Kind

	// Width is the byte width of scalar, fixed, size and reserved
	// fields, and of the inline count of a list.
	Width int

	// Measures names the field a size field describes.
	Measures string

	// Element encodes the nested value of a struct field and each
	// element of arrays and lists.
	Element Codec

	// Align is the per-element alignment of a sized array. Each
	// element is followed by zero padding up to a multiple of Align.
	Align int
}

// Scalar declares a width-byte unsigned integer.
func Scalar(name string, width int) Field {
	return Field{Name: name, Kind: KindScalar, Width: width}
}

// Fixed declares a fixed-length byte run.
func Fixed(name string, width int) Field {
	return Field{Name: name, Kind: KindFixed, Width: width}
}

// Reserved declares width bytes of zero padding. Widths up to 8 bytes
// are supported.
func Reserved(name string, width int) Field {
	return Field{Name: name, Kind: KindReserved, Width: width}
}

// Size declares a width-byte size field for the later field named
// measures. For arrays it holds the element count, for buffers the
// byte length, for sized arrays the padded byte size.
func Size(name string, width int, measures string) Field {
	return Field{Name: name, Kind: KindSize, Width: width, Measures: measures}
}

// Struct declares a single nested value.
func Struct(name string, codec Codec) Field {
	return Field{Name: name, Kind: KindStruct, Element: codec}
}

// Array declares elements counted by a size field.
func Array(name string, element Codec) Field {
	return Field{Name: name, Kind: KindArray, Element: element}
}

// SizedArray declares elements whose padded byte size is held by a
// size field. Each element is padded with zeros to a multiple of
// align bytes; align of 1 means no padding.
func SizedArray(name string, element Codec, align int) Field {
	return Field{Name: name, Kind: KindSizedArray, Element: element, Align: align}
}

// Buffer declares raw bytes whose length is held by a size field.
func Buffer(name string) Field {
	return Field{Name: name, Kind: KindBuffer}
}

// padding returns the number of zero bytes that follow an element of
// the given size.
func padding(size, align int) int {
	if align <= 1 {
		return 0
	}
	return (align - size%align) % align
}
