// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the current time so that code stamping
// records with wall-clock times (capture file headers, for instance)
// can be tested deterministically. Production code passes [Real];
// tests pass [Fake] and move time with [FakeClock.Advance].
package clock
