// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"
)

// UnknownTypeError reports a tag with no registered handler. Key holds
// the tag as the registry's key type.
type UnknownTypeError struct {
	Registry string
	Key      any
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%s: unknown type %v", e.Registry, e.Key)
}

// DuplicateRegistrationError reports a second registration for a tag.
type DuplicateRegistrationError struct {
	Registry string
	Key      any
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s: type %v is already registered", e.Registry, e.Key)
}

// IsUnknownType reports whether err (or anything it wraps) is an
// [UnknownTypeError].
func IsUnknownType(err error) bool {
	var target *UnknownTypeError
	return errors.As(err, &target)
}

// IsDuplicate reports whether err (or anything it wraps) is a
// [DuplicateRegistrationError].
func IsDuplicate(err error) bool {
	var target *DuplicateRegistrationError
	return errors.As(err, &target)
}
