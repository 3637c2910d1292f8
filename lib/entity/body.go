// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/registry"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Body is the type-specific part of an entity. Implementations are
// immutable and typically wrap a layout.Value.
type Body interface {
	Type() Type
	Size() int
	AppendBinary(buffer []byte) ([]byte, error)
	Value() layout.Value
}

// BodyDecoder reads one body at the cursor position.
type BodyDecoder func(cursor *wire.Cursor) (Body, error)

// Binding describes a registered body type.
type Binding struct {
	// Name is the human-readable type name ("transfer").
	Name string

	// Version is the current body layout version, written into the
	// header of entities built with [New].
	Version uint8

	// Embeddable marks bodies that may appear inside container bodies.
	// Containers themselves are never embeddable.
	Embeddable bool

	Decode BodyDecoder
}

var (
	bodies = registry.New[Type, Binding]("entity body registry")
	names  = registry.New[string, Type]("entity name registry")

	// registerMu makes binding a type and its name one step.
	registerMu sync.Mutex
)

// Register binds a body type. Returns a
// [registry.DuplicateRegistrationError] when the type or its name is
// already bound.
func Register(kind Type, binding Binding) error {
	if binding.Name == "" {
		return fmt.Errorf("registering type 0x%04x: name is required", uint16(kind))
	}
	if binding.Decode == nil {
		return fmt.Errorf("registering %s: decoder is required", binding.Name)
	}
	registerMu.Lock()
	defer registerMu.Unlock()
	if _, err := names.Resolve(binding.Name); err == nil {
		return &registry.DuplicateRegistrationError{Registry: names.Name(), Key: binding.Name}
	}
	if err := bodies.Register(kind, binding); err != nil {
		return err
	}
	return names.Register(binding.Name, kind)
}

// MustRegister is [Register] for init functions.
func MustRegister(kind Type, binding Binding) {
	if err := Register(kind, binding); err != nil {
		panic(err.Error())
	}
}

// Resolve returns the binding for kind, or a [registry.UnknownTypeError].
func Resolve(kind Type) (Binding, error) {
	return bodies.Resolve(kind)
}

// TypeByName returns the type registered under name.
func TypeByName(name string) (Type, error) {
	return names.Resolve(name)
}

// Types returns every registered type in ascending order.
func Types() []Type {
	return bodies.Keys()
}

// NotEmbeddableError reports a container body found where only
// embeddable bodies are allowed.
type NotEmbeddableError struct {
	Type Type
}

func (e *NotEmbeddableError) Error() string {
	return fmt.Sprintf("type %s cannot be embedded", e.Type)
}

// IsNotEmbeddable reports whether err (or anything it wraps) is a
// [NotEmbeddableError].
func IsNotEmbeddable(err error) bool {
	var target *NotEmbeddableError
	return errors.As(err, &target)
}
