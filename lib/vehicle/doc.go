// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package vehicle defines the capability interfaces a flight script
// runs against.
//
// A [Connector] owns the link to an autopilot and hands out a
// [System] once one is discovered. The System exposes narrow
// capability handles: [Action] for arm/disarm/land commands,
// [Offboard] for setpoint streaming and mode switches, [Telemetry]
// for state snapshots. Command-shaped calls return a [Result];
// setpoint sends return nothing, since the stream repeats and a lost
// setpoint is corrected by the next one.
//
// The interfaces are small so a test can substitute [Fake], which
// records every call and plays back scripted results. The production
// implementation lives in package mav.
package vehicle
