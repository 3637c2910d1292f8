// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Size returns the encoded size of value, which must be a [Record]
// (or a [Value] of any descriptor).
func (d *Descriptor) Size(value any) (int, error) {
	record, err := toRecord(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", d.name, err)
	}
	total := 0
	for _, field := range d.fields {
		size, err := d.fieldSize(field, record)
		if err != nil {
			return 0, d.fieldError(field, err)
		}
		total += size
	}
	return total, nil
}

func (d *Descriptor) fieldSize(field Field, record Record) (int, error) {
	switch field.Kind {
	case KindScalar, KindSize, KindReserved:
		return field.Width, nil
	case KindFixed:
		if _, err := fixedBytes(field, record); err != nil {
			return 0, err
		}
		return field.Width, nil
	case KindStruct:
		value, ok := record[field.Name]
		if !ok {
			return 0, missing(field.Name)
		}
		return field.Element.Size(value)
	case KindArray, KindSizedArray:
		elements, err := toElements(record[field.Name])
		if err != nil {
			return 0, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		total := 0
		for i, element := range elements {
			size, err := field.Element.Size(element)
			if err != nil {
				return 0, fmt.Errorf("element %d: %w", i, err)
			}
			total += size + padding(size, field.Align)
		}
		return total, nil
	case KindBuffer:
		data, err := toBytes(record[field.Name])
		if err != nil {
			return 0, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		return len(data), nil
	}
	return 0, fmt.Errorf("unknown kind %s", field.Kind)
}

// derivedSize computes the value a size field carries for record.
func (d *Descriptor) derivedSize(field Field, record Record) (uint64, error) {
	target := d.fields[d.index[field.Measures]]
	switch target.Kind {
	case KindArray:
		elements, err := toElements(record[target.Name])
		if err != nil {
			return 0, &ValueError{Field: target.Name, Reason: err.Error()}
		}
		return uint64(len(elements)), nil
	case KindBuffer:
		data, err := toBytes(record[target.Name])
		if err != nil {
			return 0, &ValueError{Field: target.Name, Reason: err.Error()}
		}
		return uint64(len(data)), nil
	default:
		size, err := d.fieldSize(target, record)
		return uint64(size), err
	}
}

// Serialize encodes value into a new buffer sized exactly for it.
func (d *Descriptor) Serialize(value any) ([]byte, error) {
	size, err := d.Size(value)
	if err != nil {
		return nil, err
	}
	return d.Append(make([]byte, 0, size), value)
}

// Append encodes value in field order and appends it to buffer. Size
// fields are derived from the fields they measure and reserved fields
// are written as zeros, whatever the record holds for them.
func (d *Descriptor) Append(buffer []byte, value any) ([]byte, error) {
	record, err := toRecord(value)
	if err != nil {
		return buffer, fmt.Errorf("%s: %w", d.name, err)
	}
	for _, field := range d.fields {
		buffer, err = d.appendField(buffer, field, record)
		if err != nil {
			return buffer, d.fieldError(field, err)
		}
	}
	return buffer, nil
}

func (d *Descriptor) appendField(buffer []byte, field Field, record Record) ([]byte, error) {
	switch field.Kind {
	case KindScalar:
		raw, ok := record[field.Name]
		if !ok {
			return buffer, missing(field.Name)
		}
		value, err := toUint(raw)
		if err != nil {
			return buffer, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		return wire.AppendUint(buffer, value, field.Width)

	case KindFixed:
		data, err := fixedBytes(field, record)
		if err != nil {
			return buffer, err
		}
		return append(buffer, data...), nil

	case KindSize:
		value, err := d.derivedSize(field, record)
		if err != nil {
			return buffer, err
		}
		return wire.AppendUint(buffer, value, field.Width)

	case KindReserved:
		return append(buffer, make([]byte, field.Width)...), nil

	case KindStruct:
		value, ok := record[field.Name]
		if !ok {
			return buffer, missing(field.Name)
		}
		return field.Element.Append(buffer, value)

	case KindArray, KindSizedArray:
		elements, err := toElements(record[field.Name])
		if err != nil {
			return buffer, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		for i, element := range elements {
			start := len(buffer)
			buffer, err = field.Element.Append(buffer, element)
			if err != nil {
				return buffer, fmt.Errorf("element %d: %w", i, err)
			}
			if pad := padding(len(buffer)-start, field.Align); pad > 0 {
				buffer = append(buffer, make([]byte, pad)...)
			}
		}
		return buffer, nil

	case KindBuffer:
		data, err := toBytes(record[field.Name])
		if err != nil {
			return buffer, &ValueError{Field: field.Name, Reason: err.Error()}
		}
		return append(buffer, data...), nil
	}
	return buffer, fmt.Errorf("unknown kind %s", field.Kind)
}

func fixedBytes(field Field, record Record) ([]byte, error) {
	raw, ok := record[field.Name]
	if !ok {
		return nil, missing(field.Name)
	}
	data, err := toBytes(raw)
	if err != nil {
		return nil, &ValueError{Field: field.Name, Reason: err.Error()}
	}
	if len(data) != field.Width {
		return nil, &ValueError{Field: field.Name, Reason: fmt.Sprintf("length %d, want %d", len(data), field.Width)}
	}
	return data, nil
}
