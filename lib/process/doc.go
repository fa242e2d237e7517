// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds small helpers for command entry points so
// every binary reports fatal errors the same way.
package process
