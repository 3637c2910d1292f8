// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vectors

import (
	"bytes"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/wire"

	// Registers the bodies the corpus exercises.
	_ "github.com/bureau-foundation/txcodec/lib/transaction"
)

//go:embed corpus/*.yaml
var corpus embed.FS

// Kind selects what a vector's bytes encode.
type Kind string

const (
	KindUint   Kind = "uint"
	KindBody   Kind = "body"
	KindEntity Kind = "entity"
)

// ErrorKind classifies the failure a negative vector expects.
type ErrorKind string

const (
	ErrorTruncated   ErrorKind = "truncated"
	ErrorUnknownType ErrorKind = "unknown_type"
	ErrorRange       ErrorKind = "range"
	ErrorLimit       ErrorKind = "limit"
)

// Vector is one conformance case.
type Vector struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Kind        Kind   `yaml:"kind"`

	// Type is the registered body name, for body vectors.
	Type string `yaml:"type,omitempty"`

	// Hex is the encoding. Whitespace is ignored.
	Hex string `yaml:"hex,omitempty"`

	// Size is the expected encoded size. Zero skips the check.
	Size int `yaml:"size,omitempty"`

	// Width and Value describe a uint vector.
	Width int    `yaml:"width,omitempty"`
	Value uint64 `yaml:"value,omitempty"`

	Limits *Limits `yaml:"limits,omitempty"`

	// Error makes the vector negative.
	Error ErrorKind `yaml:"error,omitempty"`

	data []byte
}

// Limits mirrors wire.Limits in vector files.
type Limits struct {
	MaxInputBytes int `yaml:"max_input_bytes,omitempty"`
	MaxElements   int `yaml:"max_elements,omitempty"`
}

// Set is a collection of vectors, usually one or more files.
type Set struct {
	Vectors []Vector `yaml:"vectors"`
}

// Bytes returns a copy of the vector's decoded hex.
func (v *Vector) Bytes() []byte { return bytes.Clone(v.data) }

func (v *Vector) limits() wire.Limits {
	if v.Limits == nil {
		return wire.Limits{}
	}
	return wire.Limits{MaxInputBytes: v.Limits.MaxInputBytes, MaxElements: v.Limits.MaxElements}
}

// Parse decodes and validates a vector document. Unknown fields are
// rejected so that typos do not silently disable a check.
func Parse(data []byte) (*Set, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var set Set
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing vectors: %w", err)
	}
	if err := set.validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// LoadFile parses the vector file at path.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vectors: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Default returns the embedded corpus, every file merged in name order.
func Default() (*Set, error) {
	paths, err := fs.Glob(corpus, "corpus/*.yaml")
	if err != nil {
		return nil, err
	}
	merged := &Set{}
	for _, path := range paths {
		data, err := corpus.ReadFile(path)
		if err != nil {
			return nil, err
		}
		set, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		merged.Vectors = append(merged.Vectors, set.Vectors...)
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge returns a set holding the vectors of every set, in order.
func Merge(sets ...*Set) (*Set, error) {
	merged := &Set{}
	for _, set := range sets {
		merged.Vectors = append(merged.Vectors, set.Vectors...)
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *Set) validate() error {
	var errs []error
	seen := make(map[string]bool, len(s.Vectors))
	for i := range s.Vectors {
		vector := &s.Vectors[i]
		if vector.Name == "" {
			errs = append(errs, fmt.Errorf("vector %d: name is required", i))
			continue
		}
		if seen[vector.Name] {
			errs = append(errs, fmt.Errorf("vector %s: duplicate name", vector.Name))
		}
		seen[vector.Name] = true
		if err := vector.validate(); err != nil {
			errs = append(errs, fmt.Errorf("vector %s: %w", vector.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (v *Vector) validate() error {
	switch v.Error {
	case "", ErrorTruncated, ErrorUnknownType, ErrorRange, ErrorLimit:
	default:
		return fmt.Errorf("unknown error kind %q", v.Error)
	}
	if v.Error == ErrorLimit && v.Limits == nil {
		return fmt.Errorf("limit vectors need limits")
	}

	switch v.Kind {
	case KindUint:
		if !wire.ValidWidth(v.Width) {
			return fmt.Errorf("invalid width %d", v.Width)
		}
		if v.Error != "" && v.Error != ErrorRange {
			return fmt.Errorf("uint vectors can only expect range errors")
		}
	case KindBody:
		if _, err := entity.TypeByName(v.Type); err != nil {
			return err
		}
	case KindEntity:
		if v.Type != "" {
			return fmt.Errorf("entity vectors take their type from the header")
		}
	default:
		return fmt.Errorf("unknown kind %q", v.Kind)
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v.Hex)
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	if v.Error == "" && len(data) == 0 {
		return fmt.Errorf("positive vectors need hex")
	}
	v.data = data
	return nil
}
