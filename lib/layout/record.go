// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"fmt"
	"reflect"
)

// Record is a structure value keyed by field name.
type Record map[string]any

// Uint returns the named field as an integer. Zero when absent or not
// an integer.
func (r Record) Uint(name string) uint64 {
	value, err := toUint(r[name])
	if err != nil {
		return 0
	}
	return value
}

// Bytes returns the named field as bytes. Nil when absent or not a
// byte value. The slice is not copied.
func (r Record) Bytes(name string) []byte {
	data, err := toBytes(r[name])
	if err != nil {
		return nil
	}
	return data
}

// Elements returns the named sequence field. Nil when absent or not a
// sequence. The slice is not copied.
func (r Record) Elements(name string) []any {
	elements, err := toElements(r[name])
	if err != nil {
		return nil
	}
	return elements
}

// Record returns the named nested record. Nil when absent or not a
// record.
func (r Record) Record(name string) Record {
	nested, err := toRecord(r[name])
	if err != nil {
		return nil
	}
	return nested
}

// Clone returns a deep copy of r. Records, slices and byte slices are
// copied; other values (such as immutable nested entities) are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	clone := make(Record, len(r))
	for name, value := range r {
		clone[name] = cloneValue(value)
	}
	return clone
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case Record:
		return typed.Clone()
	case map[string]any:
		return Record(typed).Clone()
	case []byte:
		return append([]byte(nil), typed...)
	case []any:
		clone := make([]any, len(typed))
		for i, element := range typed {
			clone[i] = cloneValue(element)
		}
		return clone
	case Value:
		// Values are immutable.
		return typed
	}
	return value
}

func toRecord(value any) (Record, error) {
	switch typed := value.(type) {
	case Record:
		return typed, nil
	case map[string]any:
		return Record(typed), nil
	case Value:
		return typed.record, nil
	case *Value:
		if typed == nil {
			return nil, fmt.Errorf("nil value")
		}
		return typed.record, nil
	case nil:
		return nil, fmt.Errorf("value is nil")
	}
	return nil, fmt.Errorf("expected a record, got %T", value)
}

// toUint accepts any non-negative Go integer, including named integer
// types such as entity.Type.
func toUint(value any) (uint64, error) {
	switch typed := value.(type) {
	case uint64:
		return typed, nil
	case uint32:
		return uint64(typed), nil
	case uint16:
		return uint64(typed), nil
	case uint8:
		return uint64(typed), nil
	case int:
		if typed < 0 {
			return 0, fmt.Errorf("negative value %d", typed)
		}
		return uint64(typed), nil
	case nil:
		return 0, fmt.Errorf("value is nil")
	}
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return reflected.Uint(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if reflected.Int() < 0 {
			return 0, fmt.Errorf("negative value %d", reflected.Int())
		}
		return uint64(reflected.Int()), nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", value)
}

// toBytes accepts byte slices, strings, and byte arrays such as
// [32]byte keys. Nil yields nil.
func toBytes(value any) ([]byte, error) {
	switch typed := value.(type) {
	case []byte:
		return typed, nil
	case string:
		return []byte(typed), nil
	case nil:
		return nil, nil
	}
	reflected := reflect.ValueOf(value)
	if reflected.Kind() == reflect.Array && reflected.Type().Elem().Kind() == reflect.Uint8 {
		data := make([]byte, reflected.Len())
		reflect.Copy(reflect.ValueOf(data), reflected)
		return data, nil
	}
	return nil, fmt.Errorf("expected bytes, got %T", value)
}

// toElements accepts []any, []Record, and any other slice type. Nil
// yields an empty sequence.
func toElements(value any) ([]any, error) {
	switch typed := value.(type) {
	case []any:
		return typed, nil
	case nil:
		return nil, nil
	case []Record:
		elements := make([]any, len(typed))
		for i, element := range typed {
			elements[i] = element
		}
		return elements, nil
	}
	reflected := reflect.ValueOf(value)
	if reflected.Kind() != reflect.Slice || reflected.Type().Elem().Kind() == reflect.Uint8 {
		return nil, fmt.Errorf("expected a sequence, got %T", value)
	}
	elements := make([]any, reflected.Len())
	for i := range elements {
		elements[i] = reflected.Index(i).Interface()
	}
	return elements, nil
}
