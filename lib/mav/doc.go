// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package mav implements the vehicle capability interfaces over a
// MAVLink link.
//
// gomavlib supplies the transport (TCP, UDP, serial), MAVLink v1/v2
// framing, the common-dialect message set, and our own outgoing
// heartbeat. This package adds the semantic layer a flight script
// needs on top of a raw frame stream:
//
//   - discovery: the first heartbeat from an autopilot component
//     names the vehicle; heartbeats after that drive a liveness
//     window behind Connected.
//   - a telemetry cache: SYS_STATUS sensor bits, landed state, and
//     the arrival times of position messages, folded into the Health
//     and InAir snapshots.
//   - command/acknowledgment correlation: COMMAND_LONG sends with a
//     bounded wait for the matching COMMAND_ACK and a resend on
//     silence, surfacing the ack result as a vehicle.Result.
//   - offboard setpoint streaming: setpoints are written immediately
//     and re-sent at 20 Hz by a keepalive goroutine, because PX4
//     leaves offboard mode when the stream drops below ~2 Hz.
//
// One goroutine owns the inbound event stream; shared state sits in
// a single mutex-guarded block. All waits go through an injected
// clock.Clock, so the acknowledgment and keepalive schedules are
// testable on a fake clock.
package mav
