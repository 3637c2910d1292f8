// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/txcodec/cmd/txcodec/cli"
	"github.com/bureau-foundation/txcodec/lib/capture"
	"github.com/bureau-foundation/txcodec/lib/config"
	"github.com/bureau-foundation/txcodec/lib/entity"
	"github.com/bureau-foundation/txcodec/lib/transaction"
	"github.com/bureau-foundation/txcodec/lib/wire"
)

func captureCommand() *cli.Command {
	return &cli.Command{
		Name:    "capture",
		Summary: "Pack entities into capture files and list them",
		Description: `A capture file holds a batch of serialized entities behind a header
recording their count, creation time, compression and a keyed BLAKE3
digest of the payload.`,
		Subcommands: []*cli.Command{
			capturePackCommand(),
			captureListCommand(),
		},
	}
}

type capturePackParams struct {
	cli.ConfigFlag
	Output      string `flag:"output,o" desc:"capture file to write; a bare name goes in the configured capture directory"`
	Compression string `flag:"compression" desc:"none, lz4 or zstd (default: configured compression)"`
	Hex         bool   `flag:"hex" desc:"inputs hold one hex entity per line instead of concatenated raw entities"`
}

func capturePackCommand() *cli.Command {
	var params capturePackParams
	return &cli.Command{
		Name:    "pack",
		Summary: "Write entities to a capture file",
		Usage:   "txcodec capture pack -o FILE [flags] [input...]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("pack", &params)
		},
		Examples: []cli.Example{
			{Description: "Pack hex entities, one per line", Command: "txcodec capture pack --hex -o replay.txcapt entities.hex"},
		},
		Run: func(args []string) error {
			return runCapturePack(args, &params)
		},
	}
}

func runCapturePack(inputs []string, params *capturePackParams) error {
	if params.Output == "" {
		return fmt.Errorf("--output is required")
	}
	cfg, logger, err := params.Load("capture/pack")
	if err != nil {
		return err
	}
	compressionName := params.Compression
	if compressionName == "" {
		compressionName = cfg.Capture.Compression
	}
	compression, err := capture.ParseCompression(compressionName)
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	var entities []*entity.Entity
	for _, input := range inputs {
		read, err := readEntities(input, params.Hex, cfg)
		if err != nil {
			return err
		}
		entities = append(entities, read...)
	}

	path := capturePath(params.Output, cfg.Capture.Directory)
	written, err := writeFileAtomic(path, func(w io.Writer) error {
		return capture.Write(w, entities, capture.Options{Compression: compression})
	})
	if err != nil {
		return err
	}
	logger.Info("wrote capture", "path", path, "entities", len(entities), "compression", compression.String(), "bytes", written)
	return nil
}

// readEntities reads every entity in one input. Raw input is entities
// back to back; hex input is one entity per line, with blank lines and
// lines starting with '#' skipped.
func readEntities(path string, hexLines bool, cfg *config.Config) ([]*entity.Entity, error) {
	limits := wire.Limits{MaxInputBytes: cfg.Limits.MaxInputBytes, MaxElements: cfg.Limits.MaxElements}
	data, err := cli.ReadInput(path, false, capture.DefaultMaxPayloadBytes)
	if err != nil {
		return nil, err
	}

	var entities []*entity.Entity
	if hexLines {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(nil, 4*max(limits.MaxInputBytes, 1<<16))
		for line := 1; scanner.Scan(); line++ {
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			encoded, err := cli.DecodeHex(text)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			decoded, consumed, err := entity.LoadWithLimits(encoded, limits)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			if consumed != len(encoded) {
				return nil, fmt.Errorf("%s:%d: %d trailing bytes after the entity", path, line, len(encoded)-consumed)
			}
			entities = append(entities, decoded)
		}
		return entities, scanner.Err()
	}

	// The input ceiling applies per entity, not to the whole stream.
	cursor, err := wire.NewLimitedCursor(data, wire.Limits{MaxElements: limits.MaxElements})
	if err != nil {
		return nil, err
	}
	for !cursor.Done() {
		start := cursor.Offset()
		decoded, err := entity.Decode(cursor)
		if err != nil {
			return nil, fmt.Errorf("%s: entity %d: %w", path, len(entities), err)
		}
		if size := cursor.Offset() - start; limits.MaxInputBytes > 0 && size > limits.MaxInputBytes {
			return nil, fmt.Errorf("%s: entity %d: %w", path, len(entities),
				&wire.LimitError{What: "input bytes", Value: size, Limit: limits.MaxInputBytes})
		}
		entities = append(entities, decoded)
	}
	return entities, nil
}

// capturePath places a bare file name in directory.
func capturePath(output, directory string) string {
	if filepath.Base(output) == output && directory != "" {
		return filepath.Join(directory, output)
	}
	return output
}

// writeFileAtomic streams write into a temporary file next to path and
// renames it into place, so readers never see a partial capture.
// Returns the number of bytes written.
func writeFileAtomic(path string, write func(io.Writer) error) (int64, error) {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return 0, err
	}
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(temporary.Name())
	if err := write(temporary); err != nil {
		temporary.Close()
		return 0, err
	}
	info, err := temporary.Stat()
	if err != nil {
		temporary.Close()
		return 0, err
	}
	if err := temporary.Close(); err != nil {
		return 0, err
	}
	return info.Size(), os.Rename(temporary.Name(), path)
}

type captureListParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

type captureListing struct {
	Compression      string          `json:"compression"`
	CreatedAt        time.Time       `json:"created_at"`
	UncompressedSize int             `json:"uncompressed_size"`
	PayloadSize      int             `json:"payload_size"`
	Digest           string          `json:"digest"`
	Entities         []captureRecord `json:"entities"`
}

type captureRecord struct {
	Index   int                `json:"index"`
	Type    string             `json:"type"`
	Network entity.NetworkType `json:"network"`
	Size    int                `json:"size"`
	Signer  entity.PublicKey   `json:"signer"`
	Hash    string             `json:"hash"`
}

func captureListCommand() *cli.Command {
	var params captureListParams
	return &cli.Command{
		Name:    "list",
		Summary: "List the entities in a capture file",
		Usage:   "txcodec capture list [flags] FILE",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("capture list takes one file, got %d arguments", len(args))
			}
			return runCaptureList(args[0], &params)
		},
	}
}

func runCaptureList(path string, params *captureListParams) error {
	cfg, logger, err := params.Load("capture/list")
	if err != nil {
		return err
	}
	file, err := os.Open(capturePath(path, cfg.Capture.Directory))
	if os.IsNotExist(err) {
		file, err = os.Open(path)
	}
	if err != nil {
		return err
	}
	defer file.Close()

	decoded, err := capture.Read(bufio.NewReader(file), capture.ReadOptions{
		Limits: wire.Limits{MaxInputBytes: cfg.Limits.MaxInputBytes, MaxElements: cfg.Limits.MaxElements},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("read capture", "path", file.Name(), "entities", len(decoded.Entities))

	header := decoded.Header
	listing := captureListing{
		Compression:      header.Compression.String(),
		CreatedAt:        header.CreatedAt,
		UncompressedSize: header.UncompressedSize,
		PayloadSize:      header.PayloadSize,
		Digest:           header.Digest.String(),
		Entities:         make([]captureRecord, len(decoded.Entities)),
	}
	for i, item := range decoded.Entities {
		hash, err := transaction.EntityHash(item)
		if err != nil {
			return err
		}
		listing.Entities[i] = captureRecord{
			Index:   i,
			Type:    item.Type().String(),
			Network: item.Network(),
			Size:    item.Size(),
			Signer:  item.Signer(),
			Hash:    hash.String(),
		}
	}
	if done, err := params.EmitJSON(listing); done {
		return err
	}

	fmt.Fprintf(cli.Stdout, "created:     %s\n", listing.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(cli.Stdout, "compression: %s (%d of %d bytes)\n", listing.Compression, listing.PayloadSize, listing.UncompressedSize)
	fmt.Fprintf(cli.Stdout, "digest:      %s\n\n", listing.Digest)
	tw := tabwriter.NewWriter(cli.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tTYPE\tNETWORK\tSIZE\tHASH")
	for _, record := range listing.Entities {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", record.Index, record.Type, record.Network, record.Size, record.Hash)
	}
	return tw.Flush()
}
