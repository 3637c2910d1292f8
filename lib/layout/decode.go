// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Load decodes a record from the start of data and reports how many
// bytes it consumed. Trailing bytes are left for the caller.
func (d *Descriptor) Load(data []byte) (Record, int, error) {
	cursor := wire.NewCursor(data)
	record, err := d.DecodeRecord(cursor)
	if err != nil {
		return nil, 0, err
	}
	return record, cursor.Offset(), nil
}

// Decode implements [Codec]. The value is a [Record].
func (d *Descriptor) Decode(cursor *wire.Cursor) (any, error) {
	return d.DecodeRecord(cursor)
}

// DecodeRecord reads one record at the cursor position, in field
// order. Size fields are kept in the record alongside the counts they
// imply. The record owns all of its bytes.
func (d *Descriptor) DecodeRecord(cursor *wire.Cursor) (Record, error) {
	record := make(Record, len(d.fields))
	// Parsed size values, keyed by the field they measure. Local to
	// this call so concurrent decodes never share state.
	sizes := make(map[string]uint64)

	for _, field := range d.fields {
		value, err := d.decodeField(cursor, field, sizes)
		if err != nil {
			return nil, d.fieldError(field, err)
		}
		record[field.Name] = value
	}
	return record, nil
}

func (d *Descriptor) decodeField(cursor *wire.Cursor, field Field, sizes map[string]uint64) (any, error) {
	switch field.Kind {
	case KindScalar:
		return cursor.ReadUint(field.Width)

	case KindFixed:
		return cursor.ReadBytes(field.Width)

	case KindSize:
		value, err := cursor.ReadUint(field.Width)
		if err != nil {
			return nil, err
		}
		sizes[field.Measures] = value
		return value, nil

	case KindReserved:
		raw, err := cursor.ReadBytes(field.Width)
		if err != nil {
			return nil, err
		}
		var value uint64
		for i := len(raw) - 1; i >= 0; i-- {
			value = value<<8 | uint64(raw[i])
		}
		return value, nil

	case KindStruct:
		return field.Element.Decode(cursor)

	case KindArray:
		return decodeCounted(cursor, field, sizes[field.Name])

	case KindSizedArray:
		return decodeSized(cursor, field, sizes[field.Name])

	case KindBuffer:
		length := sizes[field.Name]
		if err := fits(cursor, length); err != nil {
			return nil, err
		}
		return cursor.ReadBytes(int(length))
	}
	return nil, fmt.Errorf("unknown kind %s", field.Kind)
}

// fits returns a truncation error when length exceeds the remaining
// input. Checked before converting a parsed uint64 to int.
func fits(cursor *wire.Cursor, length uint64) error {
	if length > uint64(cursor.Remaining()) {
		need := int(min(length, uint64(^uint(0)>>1)))
		return &wire.TruncatedInputError{Offset: cursor.Offset(), Need: need, Available: cursor.Remaining()}
	}
	return nil
}

func decodeCounted(cursor *wire.Cursor, field Field, count uint64) ([]any, error) {
	if err := cursor.CheckElements(count); err != nil {
		return nil, err
	}
	// A declared count is untrusted; never allocate more slots than
	// there are bytes left to fill them.
	elements := make([]any, 0, min(count, uint64(cursor.Remaining())))
	for i := uint64(0); i < count; i++ {
		element, err := field.Element.Decode(cursor)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, element)
	}
	return elements, nil
}

func decodeSized(cursor *wire.Cursor, field Field, size uint64) ([]any, error) {
	if err := fits(cursor, size); err != nil {
		return nil, err
	}
	window, err := cursor.Window(int(size))
	if err != nil {
		return nil, err
	}
	elements := make([]any, 0)
	for !window.Done() {
		start := window.Offset()
		element, err := field.Element.Decode(window)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", len(elements), err)
		}
		if window.Offset() == start {
			return nil, fmt.Errorf("element %d consumed no bytes", len(elements))
		}
		if pad := padding(window.Offset()-start, field.Align); pad > 0 {
			if err := window.Skip(pad); err != nil {
				return nil, fmt.Errorf("element %d padding: %w", len(elements), err)
			}
		}
		elements = append(elements, element)
		if err := window.CheckElements(uint64(len(elements))); err != nil {
			return nil, err
		}
	}
	return elements, nil
}
