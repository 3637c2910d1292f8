// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Codec encodes and decodes one kind of value. Every [Descriptor] is a
// Codec over [Record] values; other packages implement Codec for
// values that are not plain records (entities nested inside
// aggregates, for example).
//
// Implementations must satisfy Size(v) == len(Append(nil, v)) and
// Decode must consume exactly the bytes Append produced.
type Codec interface {
	Size(value any) (int, error)
	Append(buffer []byte, value any) ([]byte, error)
	Decode(cursor *wire.Cursor) (any, error)
}

// Comparer is implemented by codecs whose values need semantic
// equality (ignoring derived and reserved fields) rather than
// reflect.DeepEqual.
type Comparer interface {
	EqualValues(a, b any) bool
}

// Describer is implemented by codecs that can produce a field tree
// for their values. Offset is the absolute position of the value's
// first byte.
type Describer interface {
	DescribeValue(value any, offset int) (Node, error)
}

// Descriptor is an ordered, validated list of fields. Descriptors are
// immutable after construction and safe for concurrent use.
type Descriptor struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewDescriptor validates fields and returns a descriptor for them.
//
// Validation checks that names are unique and non-empty, that widths
// are supported for their kind, that nested fields have a codec, and
// that every array, sized array and buffer is measured by exactly one
// earlier size field (and every size field measures one of those).
func NewDescriptor(name string, fields ...Field) (*Descriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("descriptor name is required")
	}

	descriptor := &Descriptor{
		name:   name,
		fields: append([]Field(nil), fields...),
		index:  make(map[string]int, len(fields)),
	}

	var errs []error
	for position, field := range descriptor.fields {
		if field.Name == "" {
			errs = append(errs, fmt.Errorf("field %d has no name", position))
			continue
		}
		if _, exists := descriptor.index[field.Name]; exists {
			errs = append(errs, fmt.Errorf("duplicate field %q", field.Name))
			continue
		}
		descriptor.index[field.Name] = position
		if err := validateField(field); err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", field.Name, err))
		}
	}

	measuredBy := make(map[string]string)
	for position, field := range descriptor.fields {
		if field.Kind != KindSize {
			continue
		}
		targetPosition, ok := descriptor.index[field.Measures]
		if !ok {
			errs = append(errs, fmt.Errorf("size field %q measures unknown field %q", field.Name, field.Measures))
			continue
		}
		if targetPosition <= position {
			errs = append(errs, fmt.Errorf("size field %q must precede the field %q it measures", field.Name, field.Measures))
		}
		target := descriptor.fields[targetPosition]
		if !target.Kind.measured() {
			errs = append(errs, fmt.Errorf("size field %q measures %s field %q", field.Name, target.Kind, target.Name))
		}
		if previous, taken := measuredBy[field.Measures]; taken {
			errs = append(errs, fmt.Errorf("field %q is measured by both %q and %q", field.Measures, previous, field.Name))
			continue
		}
		measuredBy[field.Measures] = field.Name
	}
	for _, field := range descriptor.fields {
		if field.Kind.measured() && measuredBy[field.Name] == "" {
			errs = append(errs, fmt.Errorf("%s field %q has no size field", field.Kind, field.Name))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("descriptor %s: %w", name, err)
	}
	return descriptor, nil
}

// MustDescriptor is [NewDescriptor] for package-level declarations. It
// panics on an invalid layout.
func MustDescriptor(name string, fields ...Field) *Descriptor {
	descriptor, err := NewDescriptor(name, fields...)
	if err != nil {
		panic("layout: " + err.Error())
	}
	return descriptor
}

func validateField(field Field) error {
	switch field.Kind {
	case KindScalar, KindSize:
		if !wire.ValidWidth(field.Width) {
			return fmt.Errorf("unsupported width %d", field.Width)
		}
	case KindFixed:
		if field.Width <= 0 {
			return fmt.Errorf("fixed width must be positive, got %d", field.Width)
		}
	case KindReserved:
		if field.Width <= 0 || field.Width > 8 {
			return fmt.Errorf("reserved width must be 1 to 8 bytes, got %d", field.Width)
		}
	case KindStruct, KindArray, KindBuffer:
	case KindSizedArray:
		if field.Align < 1 {
			return fmt.Errorf("alignment must be at least 1, got %d", field.Align)
		}
	default:
		return fmt.Errorf("unknown kind %s", field.Kind)
	}
	if field.Kind == KindStruct || field.Kind.sequence() {
		if field.Element == nil {
			return fmt.Errorf("%s field has no element codec", field.Kind)
		}
	}
	if field.Kind != KindSize && field.Measures != "" {
		return fmt.Errorf("only size fields may measure another field")
	}
	return nil
}

// Name returns the descriptor's name.
func (d *Descriptor) Name() string {
	return d.name
}

// Fields returns a copy of the descriptor's fields in wire order.
func (d *Descriptor) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Field returns the named field.
func (d *Descriptor) Field(name string) (Field, bool) {
	position, ok := d.index[name]
	if !ok {
		return Field{}, false
	}
	return d.fields[position], true
}

// FixedSize returns the encoded size when it does not depend on the
// record (only scalar, fixed, size and reserved fields, and nested
// descriptors that are themselves fixed). The second result is false
// otherwise.
func (d *Descriptor) FixedSize() (int, bool) {
	total := 0
	for _, field := range d.fields {
		switch field.Kind {
		case KindScalar, KindFixed, KindSize, KindReserved:
			total += field.Width
		case KindStruct:
			nested, ok := field.Element.(*Descriptor)
			if !ok {
				return 0, false
			}
			size, fixed := nested.FixedSize()
			if !fixed {
				return 0, false
			}
			total += size
		default:
			return 0, false
		}
	}
	return total, true
}

func (d *Descriptor) fieldError(field Field, err error) error {
	return fmt.Errorf("%s.%s: %w", d.name, field.Name, err)
}
