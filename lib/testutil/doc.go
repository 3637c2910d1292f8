// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for txcodec packages.
//
// [DecodeHex] turns a readable hex literal (whitespace, newlines and
// '|' separators allowed, so fields can be lined up) into bytes.
//
// [RequireErrorAs] asserts that an error wraps a specific typed error
// and returns it, for tests that inspect error fields.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no txcodec-internal dependencies.
package testutil
