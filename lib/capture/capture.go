// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bureau-foundation/txcodec/lib/clock"
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/layout"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

const (
	// Magic opens every capture file.
	Magic = "TXCAPT"

	// FormatVersion is the only header version this package reads and
	// writes.
	FormatVersion = 1

	// HeaderSize is the encoded size of the capture header.
	HeaderSize = 64

	// DefaultMaxPayloadBytes bounds the uncompressed payload when
	// [ReadOptions.MaxPayloadBytes] is zero. The header's declared size
	// is checked against it before anything is allocated.
	DefaultMaxPayloadBytes = 256 << 20
)

var (
	// ErrNotCapture is returned when the input does not start with
	// [Magic].
	ErrNotCapture = errors.New("not a capture file")

	// ErrDigestMismatch is returned when the payload does not hash to
	// the digest recorded in the header.
	ErrDigestMismatch = errors.New("capture payload digest mismatch")
)

var headerLayout = layout.MustDescriptor("capture_header",
	layout.Fixed("magic", 6),
	layout.Scalar("format_version", 1),
	layout.Reserved("capture_reserved_1", 1),
	layout.Scalar("compression", 1),
	layout.Reserved("capture_reserved_2", 3),
	layout.Scalar("entity_count", 4),
	layout.Scalar("created_at", 8),
	layout.Scalar("uncompressed_size", 4),
	layout.Scalar("payload_size", 4),
	layout.Fixed("payload_digest", 32),
)

var entryLayout = layout.MustDescriptor("capture_entry",
	layout.Size("entity_size", 4, "entity"),
	layout.Buffer("entity"),
)

// Header describes a capture file.
type Header struct {
	Compression      Compression
	EntityCount      int
	CreatedAt        time.Time
	UncompressedSize int
	PayloadSize      int
	Digest           Digest
}

func (h Header) record() layout.Record {
	return layout.Record{
		"magic":             Magic,
		"format_version":    uint64(FormatVersion),
		"compression":       uint64(h.Compression),
		"entity_count":      uint64(h.EntityCount),
		"created_at":        uint64(h.CreatedAt.UnixMilli()),
		"uncompressed_size": uint64(h.UncompressedSize),
		"payload_size":      uint64(h.PayloadSize),
		"payload_digest":    h.Digest[:],
	}
}

// Capture is a decoded capture file.
type Capture struct {
	Header   Header
	Entities []*entity.Entity
}

// Options configures [Encode] and [Write].
type Options struct {
	// Compression is the requested payload compression. The payload is
	// stored uncompressed when compression would not make it smaller.
	Compression Compression

	// Clock stamps the header's creation time. Nil uses the real clock.
	Clock clock.Clock
}

// ReadOptions configures [Decode] and [Read].
type ReadOptions struct {
	// Limits applies to every entity decoded from the payload.
	Limits wire.Limits

	// MaxPayloadBytes bounds the declared uncompressed payload size.
	// Zero means [DefaultMaxPayloadBytes].
	MaxPayloadBytes int
}

// Encode serializes entities into a capture file.
func Encode(entities []*entity.Entity, options Options) ([]byte, error) {
	var payload []byte
	for i, item := range entities {
		serialized, err := item.Serialize()
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		payload, err = entryLayout.Append(payload, layout.Record{"entity": serialized})
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}

	stored, applied, err := compress(payload, options.Compression)
	if err != nil {
		return nil, err
	}

	now := options.Clock
	if now == nil {
		now = clock.Real()
	}
	header := Header{
		Compression:      applied,
		EntityCount:      len(entities),
		CreatedAt:        now.Now(),
		UncompressedSize: len(payload),
		PayloadSize:      len(stored),
		Digest:           PayloadDigest(payload),
	}

	buffer := make([]byte, 0, HeaderSize+len(stored))
	buffer, err = headerLayout.Append(buffer, header.record())
	if err != nil {
		return nil, fmt.Errorf("encoding capture header: %w", err)
	}
	return append(buffer, stored...), nil
}

// Write encodes entities and writes the capture to w.
func Write(w io.Writer, entities []*entity.Entity, options Options) error {
	data, err := Encode(entities, options)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// DecodeHeader parses the capture header at the start of data.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) >= len(Magic) && !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return Header{}, ErrNotCapture
	}
	record, _, err := headerLayout.Load(data)
	if err != nil {
		return Header{}, fmt.Errorf("decoding capture header: %w", err)
	}
	if version := record.Uint("format_version"); version != FormatVersion {
		return Header{}, fmt.Errorf("unsupported capture format version %d", version)
	}
	header := Header{
		Compression:      Compression(record.Uint("compression")),
		EntityCount:      int(record.Uint("entity_count")),
		CreatedAt:        time.UnixMilli(int64(record.Uint("created_at"))).UTC(),
		UncompressedSize: int(record.Uint("uncompressed_size")),
		PayloadSize:      int(record.Uint("payload_size")),
	}
	copy(header.Digest[:], record.Bytes("payload_digest"))
	switch header.Compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return Header{}, fmt.Errorf("unsupported capture compression %s", header.Compression)
	}
	return header, nil
}

// Decode parses a complete capture file. Bytes after the payload are
// an error.
func Decode(data []byte, options ReadOptions) (*Capture, error) {
	header, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if err := checkPayloadSize(header, options); err != nil {
		return nil, err
	}
	stored := data[HeaderSize:]
	if len(stored) < header.PayloadSize {
		return nil, &wire.TruncatedInputError{Offset: HeaderSize, Need: header.PayloadSize, Available: len(stored)}
	}
	if len(stored) > header.PayloadSize {
		return nil, fmt.Errorf("%d bytes of trailing data after capture payload", len(stored)-header.PayloadSize)
	}
	return decodePayload(header, stored, options)
}

// Read reads one capture from r. Reading stops at the end of the
// payload.
func Read(r io.Reader, options ReadOptions) (*Capture, error) {
	headerBytes := make([]byte, HeaderSize)
	if read, err := io.ReadFull(r, headerBytes); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &wire.TruncatedInputError{Offset: 0, Need: HeaderSize, Available: read}
		}
		return nil, fmt.Errorf("reading capture header: %w", err)
	}
	header, err := DecodeHeader(headerBytes)
	if err != nil {
		return nil, err
	}
	if err := checkPayloadSize(header, options); err != nil {
		return nil, err
	}
	stored := make([]byte, header.PayloadSize)
	if read, err := io.ReadFull(r, stored); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &wire.TruncatedInputError{Offset: HeaderSize, Need: header.PayloadSize, Available: read}
		}
		return nil, fmt.Errorf("reading capture payload: %w", err)
	}
	return decodePayload(header, stored, options)
}

func checkPayloadSize(header Header, options ReadOptions) error {
	limit := options.MaxPayloadBytes
	if limit == 0 {
		limit = DefaultMaxPayloadBytes
	}
	if header.UncompressedSize > limit {
		return &wire.LimitError{What: "capture payload bytes", Value: header.UncompressedSize, Limit: limit}
	}
	if header.PayloadSize > limit {
		return &wire.LimitError{What: "capture payload bytes", Value: header.PayloadSize, Limit: limit}
	}
	return nil
}

func decodePayload(header Header, stored []byte, options ReadOptions) (*Capture, error) {
	payload, err := decompress(stored, header.Compression, header.UncompressedSize)
	if err != nil {
		return nil, err
	}
	if PayloadDigest(payload) != header.Digest {
		return nil, ErrDigestMismatch
	}

	// The element ceiling also bounds how many entities one capture
	// may declare. The input ceiling applies per entity, not here.
	cursor, err := wire.NewLimitedCursor(payload, wire.Limits{MaxElements: options.Limits.MaxElements})
	if err != nil {
		return nil, err
	}
	if err := cursor.CheckElements(uint64(header.EntityCount)); err != nil {
		return nil, err
	}
	entities := make([]*entity.Entity, 0, min(header.EntityCount, len(payload)/entryOverhead))
	for !cursor.Done() {
		index := len(entities)
		start := cursor.Offset()
		entry, err := entryLayout.DecodeRecord(cursor)
		if err != nil {
			return nil, fmt.Errorf("capture entry %d at payload offset %d: %w", index, start, err)
		}
		serialized := entry.Bytes("entity")
		decoded, consumed, err := entity.LoadWithLimits(serialized, options.Limits)
		if err != nil {
			return nil, fmt.Errorf("capture entry %d: %w", index, err)
		}
		if consumed != len(serialized) {
			return nil, fmt.Errorf("capture entry %d: entity is %d bytes but the entry holds %d", index, consumed, len(serialized))
		}
		entities = append(entities, decoded)
	}
	if len(entities) != header.EntityCount {
		return nil, fmt.Errorf("capture header declares %d entities, payload holds %d", header.EntityCount, len(entities))
	}
	return &Capture{Header: header, Entities: entities}, nil
}

// entryOverhead is the smallest possible entry: a length prefix and an
// entity header with an empty body.
const entryOverhead = 4 + entity.HeaderSize
