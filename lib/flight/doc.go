// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package flight runs a scripted offboard mission against a vehicle:
// connect, wait for discovery, arm, stream position setpoints, land,
// and disarm. The sequence is linear and fail-fast; the first command
// the vehicle refuses ends the run with a CommandError.
//
// The mission reports each step to an optional Observer, which is how
// the blackbox recorder sees the run without the mission knowing
// about recording.
package flight
