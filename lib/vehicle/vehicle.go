// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package vehicle

// Connector owns the transport link to an autopilot.
type Connector interface {
	// Connect opens the endpoint described by url and starts
	// listening for the vehicle. It returns once the link is set up;
	// discovery happens asynchronously and is observed via Connected.
	Connect(url string) Result

	// Connected reports whether a vehicle has been discovered and is
	// currently emitting heartbeats.
	Connected() bool

	// System returns the discovered vehicle. It fails until Connected
	// has reported true at least once.
	System() (System, error)

	// Close tears the link down. Safe to call at any point after
	// Connect, including after a failed Connect.
	Close() error
}

// System is one discovered vehicle. The capability handles share the
// connector's link and remain valid until Close.
type System interface {
	Action() Action
	Offboard() Offboard
	Telemetry() Telemetry
}

// Action issues one-shot flight commands. Each call blocks until the
// vehicle acknowledges the command or the acknowledgment wait is
// exhausted.
type Action interface {
	// Arm spins up the motors.
	Arm() Result

	// Disarm stops the motors. Vehicles refuse this in flight.
	Disarm() Result

	// Land switches to the autopilot's landing mode and returns once
	// the mode change is accepted; the descent itself is tracked via
	// Telemetry.InAir.
	Land() Result
}

// Offboard streams setpoints and switches offboard mode. Setpoint
// sends are fire-and-forget: the stream is periodic and the next send
// supersedes a lost one.
type Offboard interface {
	// SetPositionNED updates the streamed position setpoint.
	SetPositionNED(p PositionNED)

	// SetVelocityNED updates the streamed velocity setpoint.
	SetVelocityNED(v VelocityNED)

	// Start switches the vehicle into offboard mode. At least one
	// setpoint must have been sent first, or the vehicle would have
	// nothing to hold; Start fails with ResultNoSetpoint in that case.
	Start() Result

	// Stop leaves offboard mode and returns the vehicle to its
	// previous flight mode.
	Stop() Result
}

// Telemetry exposes point-in-time vehicle state.
type Telemetry interface {
	// Health returns the current sensor and estimator readiness
	// snapshot.
	Health() Health

	// InAir reports whether the vehicle considers itself airborne.
	InAir() bool
}
