// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"bytes"
	"sync"
	"testing"

	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/registry"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

const (
	noteType Type = 0x7001
	boxType  Type = 0x7002
)

var noteLayout = layout.MustDescriptor("note",
	layout.Size("text_size", 1, "text"),
	layout.Buffer("text"),
)

var boxLayout = layout.MustDescriptor("box",
	layout.Size("payload_size", 4, "entities"),
	layout.SizedArray("entities", Codec{Embedded: true}, 8),
)

type testBody struct {
	kind  Type
	value layout.Value
}

func (b testBody) Type() Type                                  { return b.kind }
func (b testBody) Size() int                                   { return b.value.Size() }
func (b testBody) AppendBinary(buffer []byte) ([]byte, error) { return b.value.AppendBinary(buffer) }
func (b testBody) Value() layout.Value                         { return b.value }

func bodyDecoder(kind Type, descriptor *layout.Descriptor) BodyDecoder {
	return func(cursor *wire.Cursor) (Body, error) {
		value, err := descriptor.DecodeValue(cursor)
		if err != nil {
			return nil, err
		}
		return testBody{kind: kind, value: value}, nil
	}
}

func init() {
	MustRegister(noteType, Binding{Name: "note", Version: 1, Embeddable: true, Decode: bodyDecoder(noteType, noteLayout)})
	MustRegister(boxType, Binding{Name: "box", Version: 2, Decode: bodyDecoder(boxType, boxLayout)})
}

func signer(fill byte) PublicKey {
	var key PublicKey
	for i := range key {
		key[i] = fill
	}
	return key
}

func newNote(t *testing.T, text string) *Entity {
	t.Helper()
	value, err := noteLayout.New(layout.Record{"text": []byte(text)})
	if err != nil {
		t.Fatalf("note layout: %v", err)
	}
	entity, err := New(Header{Signer: signer(0x11), Network: Testnet}, testBody{kind: noteType, value: value})
	if err != nil {
		t.Fatalf("New note: %v", err)
	}
	return entity
}

func newBox(t *testing.T, entities ...*Entity) (*Entity, error) {
	t.Helper()
	elements := make([]any, len(entities))
	for i, entity := range entities {
		elements[i] = entity
	}
	value, err := boxLayout.New(layout.Record{"entities": elements})
	if err != nil {
		return nil, err
	}
	return New(Header{Signer: signer(0x22), Network: Mainnet}, testBody{kind: boxType, value: value})
}

func TestEntity_HeaderLayout(t *testing.T) {
	entity := newNote(t, "hi")
	encoded, err := entity.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}

	want := append(bytes.Repeat([]byte{0x11}, 32), 0x01, 0x98, 0x01, 0x70, 0x02, 'h', 'i')
	if !bytes.Equal(encoded, want) {
		t.Errorf("Serialize = %x, want %x", encoded, want)
	}
	if entity.Size() != HeaderSize+3 {
		t.Errorf("Size = %d, want %d", entity.Size(), HeaderSize+3)
	}
	if entity.Version() != 1 {
		t.Errorf("Version = %d, want registered version 1", entity.Version())
	}
}

func TestEntity_RoundTrip(t *testing.T) {
	entity := newNote(t, "round trip")
	encoded, err := entity.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	// Trailing bytes belong to the caller.
	decoded, consumed, err := Load(append(encoded, 0xff, 0xff))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if consumed != entity.Size() {
		t.Errorf("consumed = %d, want %d", consumed, entity.Size())
	}
	if !decoded.Equal(entity) {
		t.Error("decoded entity differs from original")
	}
	if decoded.Signer() != signer(0x11) || decoded.Network() != Testnet || decoded.Type() != noteType {
		t.Errorf("header = %+v", decoded.Header())
	}

	again, err := decoded.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, encoded) {
		t.Errorf("re-encoding = %x, want %x", again, encoded)
	}
}

func TestEntity_UnknownTypeStopsBeforeBody(t *testing.T) {
	header := append(bytes.Repeat([]byte{0}, 32), 0x01, 0x68, 0xad, 0xde)

	// No body bytes at all: an unknown type must be reported, not a
	// truncated body.
	_, _, err := Load(header)
	if !registry.IsUnknownType(err) {
		t.Fatalf("Load error = %v, want UnknownTypeError", err)
	}
	if wire.IsTruncated(err) {
		t.Error("unknown type reported as truncation")
	}

	cursor := wire.NewCursor(append(header, 1, 2, 3))
	if _, err := Decode(cursor); !registry.IsUnknownType(err) {
		t.Fatalf("Decode error = %v, want UnknownTypeError", err)
	}
	if cursor.Offset() != HeaderSize {
		t.Errorf("cursor at %d after unknown type, want %d", cursor.Offset(), HeaderSize)
	}
}

func TestEntity_TruncationAtEveryPrefix(t *testing.T) {
	box, err := newBox(t, newNote(t, "a"), newNote(t, "bcdefghij"))
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := box.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	for length := 0; length < len(encoded); length++ {
		if _, _, err := Load(encoded[:length]); !wire.IsTruncated(err) {
			t.Errorf("Load of %d/%d bytes: error = %v, want TruncatedInputError", length, len(encoded), err)
		}
	}
}

func TestEntity_Nested(t *testing.T) {
	first, second := newNote(t, "a"), newNote(t, "second")
	box, err := newBox(t, first, second)
	if err != nil {
		t.Fatalf("newBox: %v", err)
	}

	// Each embedded note is padded to 8 bytes: 36+2 -> 40, 36+7 -> 48.
	if want := HeaderSize + 4 + 40 + 48; box.Size() != want {
		t.Errorf("box Size = %d, want %d", box.Size(), want)
	}

	encoded, err := box.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	decoded, consumed, err := Load(encoded)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if consumed != len(encoded) {
		t.Errorf("consumed = %d, want %d", consumed, len(encoded))
	}
	if !decoded.Equal(box) {
		t.Error("decoded box differs from original")
	}

	inner := decoded.Body().Value().Elements("entities")
	if len(inner) != 2 {
		t.Fatalf("decoded %d embedded entities, want 2", len(inner))
	}
	if !inner[1].(*Entity).Equal(second) {
		t.Error("embedded entity order not preserved")
	}
}

func TestEntity_ContainersDoNotNest(t *testing.T) {
	box, err := newBox(t, newNote(t, "x"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := newBox(t, box); !IsNotEmbeddable(err) {
		t.Errorf("building box in box: error = %v, want NotEmbeddableError", err)
	}

	// Hand-build a box whose payload is another box.
	inner, err := box.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	for len(inner)%8 != 0 {
		inner = append(inner, 0)
	}
	outer := append(bytes.Repeat([]byte{0}, 32), 0x02, 0x68, 0x02, 0x70)
	outer, _ = wire.AppendUint(outer, uint64(len(inner)), 4)
	outer = append(outer, inner...)

	if _, _, err := Load(outer); !IsNotEmbeddable(err) {
		t.Errorf("Load box in box: error = %v, want NotEmbeddableError", err)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(Header{}, nil); err == nil {
		t.Error("New with nil body succeeded")
	}

	value := noteLayout.MustNew(layout.Record{"text": []byte("x")})
	_, err := New(Header{}, testBody{kind: 0x7fff, value: value})
	if !registry.IsUnknownType(err) {
		t.Errorf("New with unregistered body: error = %v, want UnknownTypeError", err)
	}
}

func TestNew_KeepsExplicitVersion(t *testing.T) {
	value := noteLayout.MustNew(layout.Record{"text": []byte("x")})
	entity, err := New(Header{Version: 9, Type: boxType}, testBody{kind: noteType, value: value})
	if err != nil {
		t.Fatal(err)
	}
	if entity.Version() != 9 {
		t.Errorf("Version = %d, want 9", entity.Version())
	}
	if entity.Type() != noteType {
		t.Errorf("Type = %s, want the body type", entity.Type())
	}
}

func TestRegister_Duplicates(t *testing.T) {
	decoder := bodyDecoder(noteType, noteLayout)
	if err := Register(noteType, Binding{Name: "other", Decode: decoder}); !registry.IsDuplicate(err) {
		t.Errorf("duplicate type: error = %v, want DuplicateRegistrationError", err)
	}
	if err := Register(0x7100, Binding{Name: "note", Decode: decoder}); !registry.IsDuplicate(err) {
		t.Errorf("duplicate name: error = %v, want DuplicateRegistrationError", err)
	}
	if _, err := Resolve(0x7100); !registry.IsUnknownType(err) {
		t.Errorf("type with a rejected name is bound: error = %v", err)
	}
	if err := Register(0x7101, Binding{Name: "no decoder"}); err == nil {
		t.Error("registration without decoder succeeded")
	}
}

func TestRegister_ConcurrentSameName(t *testing.T) {
	const contenders = 16
	decoder := bodyDecoder(noteType, noteLayout)

	var wait sync.WaitGroup
	errs := make([]error, contenders)
	for i := range contenders {
		wait.Add(1)
		go func() {
			defer wait.Done()
			errs[i] = Register(Type(0x7200+i), Binding{Name: "contested", Decode: decoder})
		}()
	}
	wait.Wait()

	winners := 0
	for i, err := range errs {
		kind := Type(0x7200 + i)
		_, resolveErr := Resolve(kind)
		switch {
		case err == nil:
			winners++
			if resolveErr != nil {
				t.Errorf("winning type %s does not resolve: %v", kind, resolveErr)
			}
		case !registry.IsDuplicate(err):
			t.Errorf("Register(%s) error = %v, want DuplicateRegistrationError", kind, err)
		case resolveErr == nil:
			t.Errorf("losing type %s is bound without a name", kind)
		}
	}
	if winners != 1 {
		t.Errorf("%d registrations of one name succeeded, want 1", winners)
	}
}

func TestTypeByName(t *testing.T) {
	kind, err := TypeByName("box")
	if err != nil {
		t.Fatalf("TypeByName error: %v", err)
	}
	if kind != boxType {
		t.Errorf("TypeByName(box) = %s, want %s", kind, boxType)
	}
	if _, err := TypeByName("crate"); !registry.IsUnknownType(err) {
		t.Errorf("TypeByName(crate) error = %v, want UnknownTypeError", err)
	}
}

func TestType_String(t *testing.T) {
	if got := noteType.String(); got != "note (0x7001)" {
		t.Errorf("String = %q, want %q", got, "note (0x7001)")
	}
	if got := Type(0xbeef).String(); got != "0xbeef" {
		t.Errorf("String = %q, want 0xbeef", got)
	}
}

func TestLoadWithLimits(t *testing.T) {
	box, err := newBox(t, newNote(t, "a"), newNote(t, "b"), newNote(t, "c"))
	if err != nil {
		t.Fatal(err)
	}
	encoded, err := box.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadWithLimits(encoded, wire.Limits{MaxInputBytes: len(encoded) - 1}); !wire.IsLimit(err) {
		t.Errorf("input limit: error = %v, want LimitError", err)
	}
	if _, _, err := LoadWithLimits(encoded, wire.Limits{MaxElements: 2}); !wire.IsLimit(err) {
		t.Errorf("element limit: error = %v, want LimitError", err)
	}
	if _, _, err := LoadWithLimits(encoded, wire.Limits{MaxInputBytes: len(encoded), MaxElements: 3}); err != nil {
		t.Errorf("within limits: error = %v", err)
	}
}

func TestEntity_Describe(t *testing.T) {
	box, err := newBox(t, newNote(t, "a"))
	if err != nil {
		t.Fatal(err)
	}
	root, err := box.Describe(0)
	if err != nil {
		t.Fatalf("Describe error: %v", err)
	}
	if root.Name != "box" || root.Size != box.Size() {
		t.Errorf("root = %s size %d, want box size %d", root.Name, root.Size, box.Size())
	}

	tests := []struct {
		path   string
		offset int
		value  string
	}{
		{"network", 33, "104 (mainnet)"},
		{"type", 34, "box (0x7002)"},
		{"body.payload_size", 36, "40"},
		{"body.entities.0.type", 74, "note (0x7001)"},
		{"body.entities.0.body.text", 77, "61"},
	}
	for _, test := range tests {
		node, ok := root.Lookup(test.path)
		if !ok {
			t.Errorf("no node at %q", test.path)
			continue
		}
		if node.Offset != test.offset || node.Value != test.value {
			t.Errorf("%s = @%d %q, want @%d %q", test.path, node.Offset, node.Value, test.offset, test.value)
		}
	}
}

func TestParsePublicKey(t *testing.T) {
	key := signer(0xab)
	parsed, err := ParsePublicKey(key.String())
	if err != nil {
		t.Fatalf("ParsePublicKey error: %v", err)
	}
	if parsed != key {
		t.Errorf("ParsePublicKey round trip = %s", parsed)
	}
	if _, err := ParsePublicKey("abcd"); err == nil {
		t.Error("short key accepted")
	}
}

func TestParseNetwork(t *testing.T) {
	for _, network := range []NetworkType{Mainnet, Testnet} {
		parsed, err := ParseNetwork(network.String())
		if err != nil || parsed != network {
			t.Errorf("ParseNetwork(%q) = %v, %v", network.String(), parsed, err)
		}
	}
	if _, err := ParseNetwork("devnet"); err == nil {
		t.Error("ParseNetwork(devnet) succeeded")
	}
}
