// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared channel helpers for tests.
//
// [RequireReceive], [RequireSend], and [RequireClosed] wrap the
// select-with-timeout safety valve so a stuck channel fails the test
// instead of hanging the run. They are the only place the test suite
// touches the real wall clock; everything else paces itself on
// clock.Fake.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since a failed test setup is not recoverable.
package testutil
