// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"bytes"
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Value is a record bound to its descriptor, together with its
// canonical encoding. A Value is immutable: accessors return copies,
// and the encoding is computed once at construction.
type Value struct {
	descriptor *Descriptor
	record     Record
	encoded    []byte
}

// New validates record against the descriptor and returns it as a
// Value. The stored record is a normalized deep copy: integers are
// uint64, byte fields are []byte, sequences are []any, size fields
// hold their derived values and reserved fields are zero. Fields the
// descriptor does not declare are rejected.
func (d *Descriptor) New(record Record) (Value, error) {
	normalized, err := d.normalize(record)
	if err != nil {
		return Value{}, err
	}
	encoded, err := d.Serialize(normalized)
	if err != nil {
		return Value{}, err
	}
	return Value{descriptor: d, record: normalized, encoded: encoded}, nil
}

// MustNew is [Descriptor.New] for literals known to be valid.
func (d *Descriptor) MustNew(record Record) Value {
	value, err := d.New(record)
	if err != nil {
		panic("layout: " + err.Error())
	}
	return value
}

// DecodeValue reads one record at the cursor and binds it. Reserved
// fields keep the values read from the wire; the canonical encoding
// writes them as zero.
func (d *Descriptor) DecodeValue(cursor *wire.Cursor) (Value, error) {
	record, err := d.DecodeRecord(cursor)
	if err != nil {
		return Value{}, err
	}
	encoded, err := d.Serialize(record)
	if err != nil {
		return Value{}, fmt.Errorf("re-encoding decoded %s: %w", d.name, err)
	}
	return Value{descriptor: d, record: record, encoded: encoded}, nil
}

// LoadValue decodes a Value from the start of data and reports how many
// bytes it consumed.
func (d *Descriptor) LoadValue(data []byte) (Value, int, error) {
	cursor := wire.NewCursor(data)
	value, err := d.DecodeValue(cursor)
	if err != nil {
		return Value{}, 0, err
	}
	return value, cursor.Offset(), nil
}

func (d *Descriptor) normalize(record Record) (Record, error) {
	for name := range record {
		if _, declared := d.index[name]; !declared {
			return nil, fmt.Errorf("%s: %w", d.name, &ValueError{Field: name, Reason: "not declared by the layout"})
		}
	}

	normalized := record.Clone()
	if normalized == nil {
		normalized = Record{}
	}
	for _, field := range d.fields {
		raw, present := normalized[field.Name]
		var err error
		switch field.Kind {
		case KindReserved:
			normalized[field.Name] = uint64(0)
		case KindScalar:
			if present {
				normalized[field.Name], err = toUint(raw)
			}
		case KindFixed, KindBuffer:
			var data []byte
			data, err = toBytes(raw)
			if field.Kind == KindBuffer && data == nil {
				data = []byte{}
			}
			if present || field.Kind == KindBuffer {
				normalized[field.Name] = data
			}
		case KindStruct:
			if nested, ok := field.Element.(*Descriptor); ok && present {
				var child Record
				if child, err = toRecord(raw); err == nil {
					normalized[field.Name], err = nested.normalize(child)
				}
			}
		case KindArray, KindSizedArray:
			var elements []any
			if elements, err = toElements(raw); err == nil {
				elements, err = normalizeElements(field, elements)
				normalized[field.Name] = elements
			}
		}
		if err != nil {
			if IsValueError(err) {
				return nil, d.fieldError(field, err)
			}
			return nil, d.fieldError(field, &ValueError{Field: field.Name, Reason: err.Error()})
		}
	}

	// Size fields last: they depend on the normalized measured fields.
	for _, field := range d.fields {
		if field.Kind != KindSize {
			continue
		}
		derived, err := d.derivedSize(field, normalized)
		if err != nil {
			return nil, d.fieldError(field, err)
		}
		normalized[field.Name] = derived
	}
	return normalized, nil
}

func normalizeElements(field Field, elements []any) ([]any, error) {
	out := make([]any, len(elements))
	nested, isDescriptor := field.Element.(*Descriptor)
	for i, element := range elements {
		if !isDescriptor {
			out[i] = cloneValue(element)
			continue
		}
		child, err := toRecord(element)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if out[i], err = nested.normalize(child); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

// Descriptor returns the descriptor the value was validated against.
func (v Value) Descriptor() *Descriptor {
	return v.descriptor
}

// IsZero reports whether v is the zero Value (not produced by a
// descriptor).
func (v Value) IsZero() bool {
	return v.descriptor == nil
}

// Size returns the encoded size in bytes.
func (v Value) Size() int {
	return len(v.encoded)
}

// Serialize returns a copy of the canonical encoding.
func (v Value) Serialize() []byte {
	return bytes.Clone(v.encoded)
}

// AppendBinary appends the canonical encoding to buffer.
func (v Value) AppendBinary(buffer []byte) ([]byte, error) {
	return append(buffer, v.encoded...), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v Value) MarshalBinary() ([]byte, error) {
	return v.Serialize(), nil
}

// Record returns a deep copy of the normalized record.
func (v Value) Record() Record {
	return v.record.Clone()
}

// Uint returns the named integer field.
func (v Value) Uint(name string) uint64 {
	return v.record.Uint(name)
}

// Bytes returns a copy of the named byte field.
func (v Value) Bytes(name string) []byte {
	return bytes.Clone(v.record.Bytes(name))
}

// Elements returns a deep copy of the named sequence field.
func (v Value) Elements(name string) []any {
	elements := v.record.Elements(name)
	if elements == nil {
		return nil
	}
	return cloneValue(elements).([]any)
}

// Equal reports whether v and other share a descriptor and their
// records are equal ignoring size and reserved fields.
func (v Value) Equal(other Value) bool {
	if v.descriptor != other.descriptor {
		return false
	}
	if v.descriptor == nil {
		return true
	}
	return v.descriptor.EqualValues(v.record, other.record)
}

// Describe returns the value's field tree, positioned at offset.
func (v Value) Describe(offset int) (Node, error) {
	if v.descriptor == nil {
		return Node{}, fmt.Errorf("describing zero value")
	}
	return v.descriptor.DescribeValue(v.record, offset)
}
