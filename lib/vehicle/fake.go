// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package vehicle

import (
	"fmt"
	"sync"
)

// Fake is an in-memory vehicle for tests. It implements Connector,
// System, Action, Offboard, and Telemetry on one value, plays back
// the scripted results in its fields, and records every call for
// assertions.
//
// The zero value scripts everything as ResultUnknown; use NewFake for
// a vehicle that accepts all commands and reports full health.
type Fake struct {
	mu sync.Mutex

	// Scripted outcomes, one per command-shaped call.
	ConnectResult Result
	ArmResult     Result
	DisarmResult  Result
	LandResult    Result
	StartResult   Result
	StopResult    Result

	// HealthSnapshot is returned by every Health call.
	HealthSnapshot Health

	// ConnectedAfter is the number of Connected polls that report
	// false before the vehicle appears. Zero means discovered
	// immediately.
	ConnectedAfter int

	// InAirReadings is consumed one reading per InAir call; once
	// drained, InAir reports false.
	InAirReadings []bool

	connected  bool
	connectURL string

	ops        []string
	positions  []PositionNED
	velocities []VelocityNED

	connectedPolls int
	inAirPolls     int
}

var (
	_ Connector = (*Fake)(nil)
	_ System    = (*Fake)(nil)
	_ Action    = (*Fake)(nil)
	_ Offboard  = (*Fake)(nil)
	_ Telemetry = (*Fake)(nil)
)

// NewFake returns a Fake scripted for a fully successful flight:
// every command accepted, all health flags set, never airborne.
func NewFake() *Fake {
	return &Fake{
		ConnectResult: ResultSuccess,
		ArmResult:     ResultSuccess,
		DisarmResult:  ResultSuccess,
		LandResult:    ResultSuccess,
		StartResult:   ResultSuccess,
		StopResult:    ResultSuccess,
		HealthSnapshot: Health{
			GyrometerCalibrated:     true,
			AccelerometerCalibrated: true,
			MagnetometerCalibrated:  true,
			LocalPositionOK:         true,
			GlobalPositionOK:        true,
			HomePositionOK:          true,
		},
	}
}

func (f *Fake) Connect(url string) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "connect")
	f.connectURL = url
	f.connected = f.ConnectResult.OK()
	return f.ConnectResult
}

func (f *Fake) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connectedPolls++
	return f.connected && f.connectedPolls > f.ConnectedAfter
}

func (f *Fake) System() (System, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return nil, fmt.Errorf("no system discovered")
	}
	return f, nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "close")
	return nil
}

func (f *Fake) Action() Action       { return f }
func (f *Fake) Offboard() Offboard   { return f }
func (f *Fake) Telemetry() Telemetry { return f }

func (f *Fake) Arm() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "arm")
	return f.ArmResult
}

func (f *Fake) Disarm() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "disarm")
	return f.DisarmResult
}

func (f *Fake) Land() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "land")
	return f.LandResult
}

func (f *Fake) SetPositionNED(p PositionNED) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "set position")
	f.positions = append(f.positions, p)
}

func (f *Fake) SetVelocityNED(v VelocityNED) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "set velocity")
	f.velocities = append(f.velocities, v)
}

// Start honors the offboard precondition even when scripted for
// success: without a prior setpoint it returns ResultNoSetpoint, so
// an ordering bug in the caller cannot slip past a success script.
func (f *Fake) Start() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "offboard start")
	if f.StartResult.OK() && len(f.positions)+len(f.velocities) == 0 {
		return ResultNoSetpoint
	}
	return f.StartResult
}

func (f *Fake) Stop() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "offboard stop")
	return f.StopResult
}

func (f *Fake) Health() Health {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "health")
	return f.HealthSnapshot
}

func (f *Fake) InAir() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inAirPolls++
	if len(f.InAirReadings) == 0 {
		return false
	}
	reading := f.InAirReadings[0]
	f.InAirReadings = f.InAirReadings[1:]
	return reading
}

// Ops returns the ordered log of recorded calls. Connected and InAir
// polls are counted separately, not logged.
func (f *Fake) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

// Positions returns the position setpoints in send order.
func (f *Fake) Positions() []PositionNED {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PositionNED(nil), f.positions...)
}

// Velocities returns the velocity setpoints in send order.
func (f *Fake) Velocities() []VelocityNED {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]VelocityNED(nil), f.velocities...)
}

// ConnectURL returns the URL passed to Connect.
func (f *Fake) ConnectURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectURL
}

// ConnectedPolls returns how many times Connected was called.
func (f *Fake) ConnectedPolls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connectedPolls
}

// InAirPolls returns how many times InAir was called.
func (f *Fake) InAirPolls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inAirPolls
}
