// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package flight

import (
	"time"

	"github.com/mavscript/mavscript/lib/vehicle"
)

// Kind labels a mission event for observers.
type Kind string

const (
	KindConnect       Kind = "connect"
	KindHealth        Kind = "health"
	KindArm           Kind = "arm"
	KindSetpoint      Kind = "setpoint"
	KindOffboardStart Kind = "offboard-start"
	KindLand          Kind = "land"
	KindLanded        Kind = "landed"
	KindDisarm        Kind = "disarm"
	KindDone          Kind = "done"
)

// Event is one observable step of a mission run.
type Event struct {
	At   time.Time
	Kind Kind

	// Result carries the vehicle's answer for command kinds. The
	// disarm result is recorded here even though the run ignores it.
	Result vehicle.Result

	// Note carries step detail when there is any: the setpoint
	// caption, or the connection URL for KindConnect.
	Note string

	Health   *vehicle.Health
	Position *vehicle.PositionNED
	Velocity *vehicle.VelocityNED
}

// Observer receives events as the mission produces them. Calls come
// from the mission goroutine in step order; a slow observer stalls
// the flight.
type Observer interface {
	Event(e Event)
}
