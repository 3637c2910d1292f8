// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

var headerLayout = layout.MustDescriptor("entity_header",
	layout.Fixed("signer_public_key", 32),
	layout.Scalar("version", 1),
	layout.Scalar("network", 1),
	layout.Scalar("type", 2),
)

// Header holds the fields shared by every entity.
type Header struct {
	Signer  PublicKey
	Version uint8
	Network NetworkType
	Type    Type
}

func (h Header) record() layout.Record {
	return layout.Record{
		"signer_public_key": h.Signer[:],
		"version":           uint64(h.Version),
		"network":           uint64(h.Network),
		"type":              uint64(h.Type),
	}
}

// Entity is a header plus a body. Immutable.
type Entity struct {
	header Header
	body   Body
}

// New builds an entity around body. The header's Type is taken from
// the body, and a zero Version is replaced by the version registered
// for that type. The body type must be registered.
func New(header Header, body Body) (*Entity, error) {
	if body == nil {
		return nil, fmt.Errorf("entity body is required")
	}
	binding, err := Resolve(body.Type())
	if err != nil {
		return nil, err
	}
	header.Type = body.Type()
	if header.Version == 0 {
		header.Version = binding.Version
	}
	return &Entity{header: header, body: body}, nil
}

// Header returns a copy of the entity header.
func (e *Entity) Header() Header { return e.header }

// Signer returns the signer public key.
func (e *Entity) Signer() PublicKey { return e.header.Signer }

// Version returns the body layout version.
func (e *Entity) Version() uint8 { return e.header.Version }

// Network returns the network the entity belongs to.
func (e *Entity) Network() NetworkType { return e.header.Network }

// Type returns the body type.
func (e *Entity) Type() Type { return e.header.Type }

// Body returns the entity body.
func (e *Entity) Body() Body { return e.body }

// Size returns the encoded size: header plus body.
func (e *Entity) Size() int {
	return HeaderSize + e.body.Size()
}

// AppendBinary appends the header and then the body to buffer.
func (e *Entity) AppendBinary(buffer []byte) ([]byte, error) {
	buffer, err := headerLayout.Append(buffer, e.header.record())
	if err != nil {
		return buffer, fmt.Errorf("encoding entity header: %w", err)
	}
	buffer, err = e.body.AppendBinary(buffer)
	if err != nil {
		return buffer, fmt.Errorf("encoding %s body: %w", e.header.Type, err)
	}
	return buffer, nil
}

// Serialize returns the entity's encoding.
func (e *Entity) Serialize() ([]byte, error) {
	return e.AppendBinary(make([]byte, 0, e.Size()))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Entity) MarshalBinary() ([]byte, error) {
	return e.Serialize()
}

// Equal reports whether e and other have equal headers and bodies.
// Body reserved fields are ignored.
func (e *Entity) Equal(other *Entity) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.header != other.header {
		return false
	}
	return e.body.Value().Equal(other.body.Value())
}

// Load decodes an entity from the start of data and reports how many
// bytes it consumed. Trailing bytes are left for the caller.
func Load(data []byte) (*Entity, int, error) {
	cursor := wire.NewCursor(data)
	entity, err := Decode(cursor)
	if err != nil {
		return nil, 0, err
	}
	return entity, cursor.Offset(), nil
}

// LoadWithLimits is [Load] with ceilings on input size and element
// counts, for untrusted input.
func LoadWithLimits(data []byte, limits wire.Limits) (*Entity, int, error) {
	cursor, err := wire.NewLimitedCursor(data, limits)
	if err != nil {
		return nil, 0, err
	}
	entity, err := Decode(cursor)
	if err != nil {
		return nil, 0, err
	}
	return entity, cursor.Offset(), nil
}

// Decode reads one entity at the cursor position.
func Decode(cursor *wire.Cursor) (*Entity, error) {
	return decode(cursor, false)
}

func decode(cursor *wire.Cursor, embedded bool) (*Entity, error) {
	start := cursor.Offset()
	record, err := headerLayout.DecodeRecord(cursor)
	if err != nil {
		return nil, fmt.Errorf("decoding entity header at offset %d: %w", start, err)
	}
	header := Header{
		Version: uint8(record.Uint("version")),
		Network: NetworkType(record.Uint("network")),
		Type:    Type(record.Uint("type")),
	}
	copy(header.Signer[:], record.Bytes("signer_public_key"))

	// Dispatch before reading the body: an unknown or misplaced type
	// must fail without consuming anything past the header.
	binding, err := Resolve(header.Type)
	if err != nil {
		return nil, fmt.Errorf("decoding entity at offset %d: %w", start, err)
	}
	if embedded && !binding.Embeddable {
		return nil, fmt.Errorf("decoding entity at offset %d: %w", start, &NotEmbeddableError{Type: header.Type})
	}

	body, err := binding.Decode(cursor)
	if err != nil {
		return nil, fmt.Errorf("decoding %s body at offset %d: %w", binding.Name, start+HeaderSize, err)
	}
	if body.Type() != header.Type {
		return nil, fmt.Errorf("decoder for %s produced a %s body", header.Type, body.Type())
	}
	return &Entity{header: header, body: body}, nil
}

// Describe returns the entity's field tree, positioned at offset. The
// header fields come first, followed by a "body" subtree.
func (e *Entity) Describe(offset int) (layout.Node, error) {
	header, err := headerLayout.DescribeValue(e.header.record(), offset)
	if err != nil {
		return layout.Node{}, err
	}
	name := e.header.Type.Name()
	if name == "" {
		name = "entity"
	}
	root := layout.Node{
		Name:     name,
		Kind:     "entity",
		Offset:   offset,
		Size:     e.Size(),
		Children: header.Children,
	}
	for i := range root.Children {
		switch root.Children[i].Name {
		case "network":
			root.Children[i].Value += " (" + e.header.Network.String() + ")"
		case "type":
			root.Children[i].Value = e.header.Type.String()
		}
	}

	body, err := e.body.Value().Describe(offset + HeaderSize)
	if err != nil {
		return layout.Node{}, err
	}
	body.Name = "body"
	root.Children = append(root.Children, body)
	return root, nil
}
