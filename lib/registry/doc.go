// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry provides a concurrency-safe map from tags to
// handlers, used to dispatch decoding on a discriminator read from the
// wire.
//
// Registries are populated at process start, typically from init
// functions, and read on every decode. Registering a tag twice is a
// programming error reported as [DuplicateRegistrationError] (or a
// panic from [Registry.MustRegister]); resolving an unbound tag fails
// with [UnknownTypeError] so callers can reject input before reading
// anything the tag would have described.
package registry
