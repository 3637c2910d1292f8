// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Codec is a layout.Codec over *Entity values, for fields that hold
// whole entities. With Embedded set, body types not registered as
// embeddable are rejected on both encode and decode.
type Codec struct {
	Embedded bool
}

var (
	_ layout.Codec     = Codec{}
	_ layout.Comparer  = Codec{}
	_ layout.Describer = Codec{}
)

func (c Codec) entity(value any) (*Entity, error) {
	entity, ok := value.(*Entity)
	if !ok || entity == nil {
		return nil, fmt.Errorf("expected *entity.Entity, got %T", value)
	}
	if c.Embedded {
		binding, err := Resolve(entity.Type())
		if err != nil {
			return nil, err
		}
		if !binding.Embeddable {
			return nil, &NotEmbeddableError{Type: entity.Type()}
		}
	}
	return entity, nil
}

// Size implements layout.Codec.
func (c Codec) Size(value any) (int, error) {
	entity, err := c.entity(value)
	if err != nil {
		return 0, err
	}
	return entity.Size(), nil
}

// Append implements layout.Codec.
func (c Codec) Append(buffer []byte, value any) ([]byte, error) {
	entity, err := c.entity(value)
	if err != nil {
		return buffer, err
	}
	return entity.AppendBinary(buffer)
}

// Decode implements layout.Codec. The value is an *Entity.
func (c Codec) Decode(cursor *wire.Cursor) (any, error) {
	return decode(cursor, c.Embedded)
}

// EqualValues implements layout.Comparer.
func (c Codec) EqualValues(a, b any) bool {
	left, leftOK := a.(*Entity)
	right, rightOK := b.(*Entity)
	return leftOK && rightOK && left.Equal(right)
}

// DescribeValue implements layout.Describer.
func (c Codec) DescribeValue(value any, offset int) (layout.Node, error) {
	entity, err := c.entity(value)
	if err != nil {
		return layout.Node{}, err
	}
	return entity.Describe(offset)
}
