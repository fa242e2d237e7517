// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package vehicle

import "fmt"

// PositionNED is a position setpoint in the local
// north-east-down frame: meters from the takeoff origin, down
// positive toward the ground (so altitude above origin is a negative
// Down). Yaw is degrees clockwise from north.
type PositionNED struct {
	North float32
	East  float32
	Down  float32
	Yaw   float32
}

func (p PositionNED) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f | yaw %.1f]", p.North, p.East, p.Down, p.Yaw)
}

// VelocityNED is a velocity setpoint in the local north-east-down
// frame, meters per second, with yaw rate in degrees per second
// clockwise.
type VelocityNED struct {
	North   float32
	East    float32
	Down    float32
	YawRate float32
}

func (v VelocityNED) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f | yaw rate %.1f]", v.North, v.East, v.Down, v.YawRate)
}

// Health is a snapshot of sensor calibration and position estimator
// readiness.
type Health struct {
	GyrometerCalibrated     bool
	AccelerometerCalibrated bool
	MagnetometerCalibrated  bool
	LocalPositionOK         bool
	GlobalPositionOK        bool
	HomePositionOK          bool
}
