// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package blackbox

import (
	"time"

	"github.com/mavscript/mavscript/lib/flight"
	"github.com/mavscript/mavscript/lib/vehicle"
)

// formatVersion is stamped into every header and checked on read.
const formatVersion = 1

// Header identifies one flight record file. Create stamps Format;
// callers fill the rest.
type Header struct {
	Format        int       `cbor:"format"`
	Program       string    `cbor:"program"`
	Version       string    `cbor:"version"`
	ConnectionURL string    `cbor:"connection_url"`
	PlanName      string    `cbor:"plan_name"`
	PlanDigest    string    `cbor:"plan_digest"`
	StartedAt     time.Time `cbor:"started_at"`
}

// Record is one stored mission event.
type Record struct {
	At   time.Time `cbor:"at"`
	Kind string    `cbor:"kind"`

	// Result is the vehicle's answer for command events, empty for
	// milestones.
	Result string `cbor:"result,omitempty"`

	// Note is the console caption for the event, when it had one.
	Note string `cbor:"note,omitempty"`

	Health   *vehicle.Health      `cbor:"health,omitempty"`
	Position *vehicle.PositionNED `cbor:"position,omitempty"`
	Velocity *vehicle.VelocityNED `cbor:"velocity,omitempty"`
}

// resultKinds are the event kinds whose Result field is meaningful.
var resultKinds = map[flight.Kind]bool{
	flight.KindConnect:       true,
	flight.KindArm:           true,
	flight.KindOffboardStart: true,
	flight.KindLand:          true,
	flight.KindDisarm:        true,
}

func makeRecord(e flight.Event) Record {
	rec := Record{
		At:       e.At,
		Kind:     string(e.Kind),
		Note:     e.Note,
		Health:   e.Health,
		Position: e.Position,
		Velocity: e.Velocity,
	}
	if resultKinds[e.Kind] {
		rec.Result = e.Result.String()
	}
	return rec
}
