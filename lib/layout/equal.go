// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"bytes"
	"reflect"
)

// EqualValues implements [Comparer]. Two records are equal when every
// data-carrying field matches; size fields (derived) and reserved
// fields (never written) are ignored. Nested values are compared by
// their codec when it implements Comparer.
func (d *Descriptor) EqualValues(a, b any) bool {
	left, err := toRecord(a)
	if err != nil {
		return false
	}
	right, err := toRecord(b)
	if err != nil {
		return false
	}

	for _, field := range d.fields {
		leftValue, rightValue := left[field.Name], right[field.Name]
		switch field.Kind {
		case KindSize, KindReserved:
			continue
		case KindScalar:
			leftInt, leftErr := toUint(leftValue)
			rightInt, rightErr := toUint(rightValue)
			if leftErr != nil || rightErr != nil {
				if leftValue != nil || rightValue != nil {
					return false
				}
				continue
			}
			if leftInt != rightInt {
				return false
			}
		case KindFixed, KindBuffer:
			leftBytes, leftErr := toBytes(leftValue)
			rightBytes, rightErr := toBytes(rightValue)
			if leftErr != nil || rightErr != nil || !bytes.Equal(leftBytes, rightBytes) {
				return false
			}
		case KindStruct:
			if !equalElement(field.Element, leftValue, rightValue) {
				return false
			}
		case KindArray, KindSizedArray:
			leftElements, leftErr := toElements(leftValue)
			rightElements, rightErr := toElements(rightValue)
			if leftErr != nil || rightErr != nil || len(leftElements) != len(rightElements) {
				return false
			}
			for i := range leftElements {
				if !equalElement(field.Element, leftElements[i], rightElements[i]) {
					return false
				}
			}
		}
	}
	return true
}

func equalElement(codec Codec, a, b any) bool {
	if comparer, ok := codec.(Comparer); ok {
		return comparer.EqualValues(a, b)
	}
	return reflect.DeepEqual(a, b)
}
