// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestRegistry_RegisterResolve(t *testing.T) {
	registry := New[uint16, string]("bodies")
	if err := registry.Register(0x4154, "transfer"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	got, err := registry.Resolve(0x4154)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "transfer" {
		t.Errorf("Resolve = %q, want transfer", got)
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	registry := New[uint16, string]("bodies")
	registry.MustRegister(1, "first")

	err := registry.Register(1, "second")
	if !IsDuplicate(err) {
		t.Fatalf("Register error = %v, want DuplicateRegistrationError", err)
	}
	if got, _ := registry.Resolve(1); got != "first" {
		t.Errorf("binding replaced by duplicate: Resolve = %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRegister did not panic on a duplicate")
		}
	}()
	registry.MustRegister(1, "third")
}

func TestRegistry_Unknown(t *testing.T) {
	registry := New[uint16, string]("bodies")
	_, err := registry.Resolve(0xffff)

	var unknown *UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("Resolve error = %v, want UnknownTypeError", err)
	}
	if unknown.Key != uint16(0xffff) || unknown.Registry != "bodies" {
		t.Errorf("UnknownTypeError = %+v", *unknown)
	}
	if !IsUnknownType(err) {
		t.Error("IsUnknownType returned false")
	}
}

func TestRegistry_Keys(t *testing.T) {
	registry := New[string, int]("names")
	for i, key := range []string{"c", "a", "b"} {
		registry.MustRegister(key, i)
	}
	if got := registry.Keys(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys = %v, want [a b c]", got)
	}
	if registry.Len() != 3 {
		t.Errorf("Len = %d, want 3", registry.Len())
	}
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	registry := New[int, int]("numbers")
	for i := range 100 {
		registry.MustRegister(i, i*i)
	}

	var wait sync.WaitGroup
	for worker := range 8 {
		wait.Add(1)
		go func() {
			defer wait.Done()
			for i := range 100 {
				got, err := registry.Resolve(i)
				if err != nil || got != i*i {
					t.Errorf("worker %d: Resolve(%d) = %d, %v", worker, i, got, err)
					return
				}
			}
		}()
	}
	wait.Wait()
}
