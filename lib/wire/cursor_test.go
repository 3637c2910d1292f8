// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"testing"
)

func TestCursor_SequentialReads(t *testing.T) {
	cursor := NewCursor([]byte{0x54, 0x41, 0x07, 'a', 'b', 'c', 0xff})

	kind, err := cursor.ReadUint(2)
	if err != nil {
		t.Fatalf("ReadUint(2) error: %v", err)
	}
	if kind != 0x4154 {
		t.Errorf("ReadUint(2) = %#x, want 0x4154", kind)
	}

	small, err := cursor.ReadUint(1)
	if err != nil {
		t.Fatalf("ReadUint(1) error: %v", err)
	}
	if small != 7 {
		t.Errorf("ReadUint(1) = %d, want 7", small)
	}

	text, err := cursor.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes(3) error: %v", err)
	}
	if string(text) != "abc" {
		t.Errorf("ReadBytes(3) = %q, want %q", text, "abc")
	}

	if cursor.Offset() != 6 || cursor.Remaining() != 1 {
		t.Errorf("offset=%d remaining=%d, want 6 and 1", cursor.Offset(), cursor.Remaining())
	}
	if err := cursor.Skip(1); err != nil {
		t.Fatalf("Skip(1) error: %v", err)
	}
	if !cursor.Done() {
		t.Error("cursor not done after consuming all input")
	}
}

func TestCursor_TruncatedReportsPosition(t *testing.T) {
	cursor := NewCursor([]byte{1, 2, 3})
	if err := cursor.Skip(2); err != nil {
		t.Fatalf("Skip(2) error: %v", err)
	}

	_, err := cursor.ReadUint(4)
	var truncated *TruncatedInputError
	if !errors.As(err, &truncated) {
		t.Fatalf("ReadUint(4) error = %v, want TruncatedInputError", err)
	}
	if truncated.Offset != 2 || truncated.Need != 4 || truncated.Available != 1 {
		t.Errorf("TruncatedInputError = %+v, want offset 2 need 4 available 1", *truncated)
	}
	if cursor.Offset() != 2 {
		t.Errorf("failed read advanced the cursor to %d", cursor.Offset())
	}
}

func TestCursor_Window(t *testing.T) {
	parent := NewCursor([]byte{0xaa, 1, 2, 3, 0xbb})
	if err := parent.Skip(1); err != nil {
		t.Fatal(err)
	}

	window, err := parent.Window(3)
	if err != nil {
		t.Fatalf("Window(3) error: %v", err)
	}
	if window.Offset() != 1 {
		t.Errorf("window offset = %d, want absolute offset 1", window.Offset())
	}
	if parent.Offset() != 4 {
		t.Errorf("parent offset = %d after window, want 4", parent.Offset())
	}

	if _, err := window.ReadBytes(2); err != nil {
		t.Fatalf("ReadBytes(2) in window: %v", err)
	}
	_, err = window.ReadBytes(2)
	var truncated *TruncatedInputError
	if !errors.As(err, &truncated) {
		t.Fatalf("read past window = %v, want TruncatedInputError", err)
	}
	if truncated.Offset != 3 {
		t.Errorf("truncation offset = %d, want absolute offset 3", truncated.Offset)
	}
}

func TestCursor_ReadBytesCopies(t *testing.T) {
	data := []byte{1, 2, 3}
	cursor := NewCursor(data)
	got, err := cursor.ReadBytes(3)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 9
	if got[0] != 1 {
		t.Error("ReadBytes result aliases the input buffer")
	}
}

func TestNewLimitedCursor(t *testing.T) {
	if _, err := NewLimitedCursor(make([]byte, 10), Limits{MaxInputBytes: 9}); !IsLimit(err) {
		t.Errorf("oversized input error = %v, want LimitError", err)
	}

	cursor, err := NewLimitedCursor(make([]byte, 10), Limits{MaxInputBytes: 10, MaxElements: 4})
	if err != nil {
		t.Fatalf("NewLimitedCursor error: %v", err)
	}
	if err := cursor.CheckElements(4); err != nil {
		t.Errorf("CheckElements(4) = %v, want nil", err)
	}
	if err := cursor.CheckElements(5); !IsLimit(err) {
		t.Errorf("CheckElements(5) = %v, want LimitError", err)
	}

	window, err := cursor.Window(5)
	if err != nil {
		t.Fatal(err)
	}
	if err := window.CheckElements(5); !IsLimit(err) {
		t.Errorf("window did not inherit limits: CheckElements(5) = %v", err)
	}
}

func TestCursor_NoLimits(t *testing.T) {
	cursor := NewCursor(nil)
	if err := cursor.CheckElements(1 << 40); err != nil {
		t.Errorf("CheckElements without limits = %v, want nil", err)
	}
}
