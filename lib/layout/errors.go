// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"fmt"
)

// ValueError reports a record value that cannot be encoded by its
// field: the wrong Go type, a fixed field of the wrong length, a
// missing required value, or a field the descriptor does not declare.
type ValueError struct {
	Field  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// IsValueError reports whether err (or anything it wraps) is a
// [ValueError].
func IsValueError(err error) bool {
	var target *ValueError
	return errors.As(err, &target)
}

func missing(field string) error {
	return &ValueError{Field: field, Reason: "value is required"}
}
