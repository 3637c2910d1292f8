// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
)

// ValidWidth reports whether width is a supported integer width:
// 1, 2, 4 or 8 bytes.
func ValidWidth(width int) bool {
	switch width {
	case 1, 2, 4, 8:
		return true
	}
	return false
}

// MaxUint returns the largest value representable in width bytes.
// Panics on an unsupported width; widths are fixed when a layout is
// declared, so a bad one is a programming error.
func MaxUint(width int) uint64 {
	if !ValidWidth(width) {
		panic(fmt.Sprintf("wire: unsupported integer width %d", width))
	}
	if width == 8 {
		return ^uint64(0)
	}
	return 1<<(8*uint(width)) - 1
}

// CheckUint returns a [RangeError] when value does not fit in width
// bytes.
func CheckUint(value uint64, width int) error {
	limit := MaxUint(width)
	if value > limit {
		return &RangeError{Value: value, Width: width, Max: limit}
	}
	return nil
}

// AppendUint appends value to buffer as a width-byte little-endian
// integer. The buffer is returned unchanged alongside a [RangeError]
// when the value does not fit.
func AppendUint(buffer []byte, value uint64, width int) ([]byte, error) {
	if err := CheckUint(value, width); err != nil {
		return buffer, err
	}
	switch width {
	case 1:
		return append(buffer, byte(value)), nil
	case 2:
		return binary.LittleEndian.AppendUint16(buffer, uint16(value)), nil
	case 4:
		return binary.LittleEndian.AppendUint32(buffer, uint32(value)), nil
	default:
		return binary.LittleEndian.AppendUint64(buffer, value), nil
	}
}

// EncodeUint returns value as a width-byte little-endian integer.
func EncodeUint(value uint64, width int) ([]byte, error) {
	return AppendUint(make([]byte, 0, width), value, width)
}

// DecodeUint interprets data as a little-endian unsigned integer. The
// width is len(data), which must be 1, 2, 4 or 8.
func DecodeUint(data []byte) (uint64, error) {
	switch len(data) {
	case 1:
		return uint64(data[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(data)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(data)), nil
	case 8:
		return binary.LittleEndian.Uint64(data), nil
	}
	return 0, fmt.Errorf("unsupported integer width %d", len(data))
}

// EncodeBuffer returns a copy of data. Raw byte fields are written
// verbatim; the copy keeps the encoded output independent of the
// caller's slice.
func EncodeBuffer(data []byte) []byte {
	return append([]byte(nil), data...)
}

// DecodeBuffer splits the first length bytes off source. The returned
// bytes are a copy; remainder aliases source.
func DecodeBuffer(source []byte, length int) ([]byte, []byte, error) {
	if length < 0 {
		return nil, source, fmt.Errorf("negative buffer length %d", length)
	}
	if len(source) < length {
		return nil, source, &TruncatedInputError{Need: length, Available: len(source)}
	}
	return append([]byte(nil), source[:length]...), source[length:], nil
}
