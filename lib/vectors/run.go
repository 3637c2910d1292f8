// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vectors

import (
	"bytes"
	"fmt"

	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/registry"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

// Result is the outcome of one vector.
type Result struct {
	Name string
	Kind Kind

	// Err is nil when the vector passed.
	Err error
}

// Passed reports whether the vector passed.
func (r Result) Passed() bool { return r.Err == nil }

// Run checks every vector in set, in order.
func Run(set *Set) []Result {
	results := make([]Result, len(set.Vectors))
	for i := range set.Vectors {
		vector := &set.Vectors[i]
		results[i] = Result{Name: vector.Name, Kind: vector.Kind, Err: vector.Check()}
	}
	return results
}

// Failures returns the failed results.
func Failures(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed() {
			failed = append(failed, result)
		}
	}
	return failed
}

// Classify maps a codec error onto the vector error kinds. Returns ""
// for errors outside them.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case wire.IsTruncated(err):
		return ErrorTruncated
	case registry.IsUnknownType(err):
		return ErrorUnknownType
	case wire.IsRange(err):
		return ErrorRange
	case wire.IsLimit(err):
		return ErrorLimit
	default:
		return ""
	}
}

// Check runs the vector and returns the first failed expectation.
func (v *Vector) Check() error {
	if v.Kind == KindUint {
		return v.checkUint()
	}

	if v.Error != "" {
		_, _, err := v.decode(v.data)
		if err == nil {
			return fmt.Errorf("decoded successfully, expected %s error", v.Error)
		}
		if got := Classify(err); got != v.Error {
			return fmt.Errorf("expected %s error, got %v", v.Error, err)
		}
		return nil
	}

	encoded, consumed, err := v.decode(v.data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if consumed != len(v.data) {
		return fmt.Errorf("consumed %d of %d bytes", consumed, len(v.data))
	}
	if v.Size != 0 && len(v.data) != v.Size {
		return fmt.Errorf("input is %d bytes, vector declares size %d", len(v.data), v.Size)
	}
	if len(encoded) != len(v.data) {
		return fmt.Errorf("reported size %d, input is %d bytes", len(encoded), len(v.data))
	}
	if !bytes.Equal(encoded, v.data) {
		return fmt.Errorf("re-serialization differs:\n got %X\nwant %X", encoded, v.data)
	}
	return v.checkPrefixes(func(prefix []byte) error {
		_, _, err := v.decode(prefix)
		return err
	})
}

func (v *Vector) checkUint() error {
	encoded, err := wire.EncodeUint(v.Value, v.Width)
	if v.Error != "" {
		if got := Classify(err); got != v.Error {
			return fmt.Errorf("expected %s error encoding %d in %d bytes, got %v", v.Error, v.Value, v.Width, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if !bytes.Equal(encoded, v.data) {
		return fmt.Errorf("encoding = %X, want %X", encoded, v.data)
	}
	decoded, err := wire.NewCursor(v.data).ReadUint(v.Width)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if decoded != v.Value {
		return fmt.Errorf("decoded %d, want %d", decoded, v.Value)
	}
	return v.checkPrefixes(func(prefix []byte) error {
		_, err := wire.NewCursor(prefix).ReadUint(v.Width)
		return err
	})
}

// checkPrefixes requires every strict prefix of the input to fail with
// a truncation error.
func (v *Vector) checkPrefixes(decode func([]byte) error) error {
	for length := range len(v.data) {
		err := decode(v.data[:length])
		if err == nil {
			return fmt.Errorf("prefix of %d bytes decoded successfully", length)
		}
		if !wire.IsTruncated(err) {
			return fmt.Errorf("prefix of %d bytes: expected truncation error, got %v", length, err)
		}
	}
	return nil
}

// hashVerifier is implemented by bodies that carry a digest of their
// contents.
type hashVerifier interface {
	VerifyTransactionsHash() error
}

// decode decodes data per the vector kind and returns the value's
// re-serialization and the bytes consumed.
func (v *Vector) decode(data []byte) ([]byte, int, error) {
	cursor, err := wire.NewLimitedCursor(data, v.limits())
	if err != nil {
		return nil, 0, err
	}

	var body entity.Body
	var encoded []byte
	switch v.Kind {
	case KindEntity:
		decoded, err := entity.Decode(cursor)
		if err != nil {
			return nil, 0, err
		}
		if encoded, err = decoded.Serialize(); err != nil {
			return nil, 0, err
		}
		if decoded.Size() != len(encoded) {
			return nil, 0, fmt.Errorf("reported size %d, serialization is %d bytes", decoded.Size(), len(encoded))
		}
		body = decoded.Body()
	case KindBody:
		kind, err := entity.TypeByName(v.Type)
		if err != nil {
			return nil, 0, err
		}
		binding, err := entity.Resolve(kind)
		if err != nil {
			return nil, 0, err
		}
		if body, err = binding.Decode(cursor); err != nil {
			return nil, 0, err
		}
		if encoded, err = body.AppendBinary(nil); err != nil {
			return nil, 0, err
		}
		if body.Size() != len(encoded) {
			return nil, 0, fmt.Errorf("reported size %d, serialization is %d bytes", body.Size(), len(encoded))
		}
	default:
		return nil, 0, fmt.Errorf("kind %q has no decoder", v.Kind)
	}

	if verifier, ok := body.(hashVerifier); ok {
		if err := verifier.VerifyTransactionsHash(); err != nil {
			return nil, 0, err
		}
	}
	return encoded, cursor.Offset(), nil
}
