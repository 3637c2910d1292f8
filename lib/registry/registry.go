// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"cmp"
	"slices"
	"sync"
)

// Registry maps keys to values. The zero value is not usable; create
// registries with [New]. Safe for concurrent use.
type Registry[K cmp.Ordered, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]V
}

// New returns an empty registry. The name prefixes error messages.
func New[K cmp.Ordered, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{name: name, entries: make(map[K]V)}
}

// Name returns the registry's name.
func (r *Registry[K, V]) Name() string {
	return r.name
}

// Register binds key to value. Returns a [DuplicateRegistrationError]
// if key is already bound; the existing binding is kept.
func (r *Registry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists {
		return &DuplicateRegistrationError{Registry: r.name, Key: key}
	}
	r.entries[key] = value
	return nil
}

// MustRegister is [Registry.Register] for init functions. It panics on
// a duplicate.
func (r *Registry[K, V]) MustRegister(key K, value V) {
	if err := r.Register(key, value); err != nil {
		panic(err.Error())
	}
}

// Resolve returns the value bound to key, or an [UnknownTypeError].
func (r *Registry[K, V]) Resolve(key K) (V, error) {
	r.mu.RLock()
	value, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok {
		var zero V
		return zero, &UnknownTypeError{Registry: r.name, Key: key}
	}
	return value, nil
}

// Keys returns every bound key in ascending order.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	keys := make([]K, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	r.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

// Len returns the number of bindings.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
