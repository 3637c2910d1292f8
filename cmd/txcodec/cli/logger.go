// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the logger commands report progress through.
// On a terminal it writes slog text; when stderr is piped or redirected
// it writes JSON. level is "debug", "info", "warn" or "error".
//
// Callers scope the logger with command context:
//
//	logger = logger.With("command", "capture/pack", "file", path)
func NewCommandLogger(level string) (*slog.Logger, error) {
	var handler slog.Handler
	parsed, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	options := &slog.HandlerOptions{Level: parsed}
	if file, ok := Stderr.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		handler = slog.NewTextHandler(Stderr, options)
	} else {
		handler = slog.NewJSONHandler(Stderr, options)
	}
	return slog.New(handler), nil
}

// ParseLevel parses a log level name.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
