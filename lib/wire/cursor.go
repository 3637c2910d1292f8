// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "fmt"

// Limits are ceilings applied while decoding untrusted input. A zero
// field means no limit.
type Limits struct {
	// MaxInputBytes bounds the total length of the buffer handed to
	// [NewLimitedCursor].
	MaxInputBytes int

	// MaxElements bounds the element count any single array or list
	// may declare.
	MaxElements int
}

// Cursor is a read position over an immutable byte buffer. A cursor is
// owned by one decode call and is not safe for concurrent use.
type Cursor struct {
	data   []byte
	offset int
	// base is the absolute offset of data[0] within the outermost
	// buffer, so windows report positions callers can locate.
	base   int
	limits Limits
}

// NewCursor returns a cursor at the start of data with no limits.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// NewLimitedCursor returns a cursor at the start of data that enforces
// limits. Returns a [LimitError] when data already exceeds
// MaxInputBytes.
func NewLimitedCursor(data []byte, limits Limits) (*Cursor, error) {
	if limits.MaxInputBytes > 0 && len(data) > limits.MaxInputBytes {
		return nil, &LimitError{What: "input bytes", Value: len(data), Limit: limits.MaxInputBytes}
	}
	return &Cursor{data: data, limits: limits}, nil
}

// Offset returns the absolute read position.
func (c *Cursor) Offset() int {
	return c.base + c.offset
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.offset
}

// Done reports whether every byte has been read.
func (c *Cursor) Done() bool {
	return c.offset == len(c.data)
}

// Limits returns the limits this cursor enforces.
func (c *Cursor) Limits() Limits {
	return c.limits
}

func (c *Cursor) need(n int) error {
	if available := c.Remaining(); n > available {
		return &TruncatedInputError{Offset: c.Offset(), Need: n, Available: available}
	}
	return nil
}

// ReadUint reads a width-byte little-endian unsigned integer.
func (c *Cursor) ReadUint(width int) (uint64, error) {
	if !ValidWidth(width) {
		return 0, fmt.Errorf("unsupported integer width %d", width)
	}
	if err := c.need(width); err != nil {
		return 0, err
	}
	value, err := DecodeUint(c.data[c.offset : c.offset+width])
	if err != nil {
		return 0, err
	}
	c.offset += width
	return value, nil
}

// ReadBytes reads n bytes and returns a copy of them.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length %d at offset %d", n, c.Offset())
	}
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := append([]byte(nil), c.data[c.offset:c.offset+n]...)
	c.offset += n
	return out, nil
}

// Skip advances past n bytes without copying them.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("negative skip length %d at offset %d", n, c.Offset())
	}
	if err := c.need(n); err != nil {
		return err
	}
	c.offset += n
	return nil
}

// Window returns a cursor bounded to the next n bytes and advances c
// past them. The window inherits c's limits and reports absolute
// offsets. Reads past the end of the window fail with a
// [TruncatedInputError] even when the parent has more input.
func (c *Cursor) Window(n int) (*Cursor, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative window length %d at offset %d", n, c.Offset())
	}
	if err := c.need(n); err != nil {
		return nil, err
	}
	window := &Cursor{
		data:   c.data[c.offset : c.offset+n],
		base:   c.Offset(),
		limits: c.limits,
	}
	c.offset += n
	return window, nil
}

// CheckElements returns a [LimitError] when count exceeds the cursor's
// MaxElements limit.
func (c *Cursor) CheckElements(count uint64) error {
	if c.limits.MaxElements > 0 && count > uint64(c.limits.MaxElements) {
		return &LimitError{What: "elements", Value: int(min(count, uint64(^uint(0)>>1))), Limit: c.limits.MaxElements}
	}
	return nil
}
