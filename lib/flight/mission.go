// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package flight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mavscript/mavscript/lib/clock"
	"github.com/mavscript/mavscript/lib/console"
	"github.com/mavscript/mavscript/lib/plan"
	"github.com/mavscript/mavscript/lib/vehicle"
)

// Command operation names, as they appear in CommandError and on the
// console.
const (
	OpConnection    = "connection"
	OpArming        = "arming"
	OpOffboardStart = "offboard start"
	OpLanding       = "landing"
)

const (
	// pollInterval paces the discovery and landing wait loops.
	pollInterval = time.Second

	// settleDelay gives the autopilot a moment to publish its first
	// telemetry after discovery, before the health probe.
	settleDelay = time.Second

	// calibratedDelay is the extra pause taken when the gyro reports
	// calibrated.
	calibratedDelay = time.Second

	// disarmGrace keeps the link up after disarming so the autopilot
	// can finish shutting down on its own.
	disarmGrace = 3 * time.Second

	// offboardMode tags offboard console lines with the coordinate
	// convention in use.
	offboardMode = "NED"
)

// CommandError reports a vehicle command the run could not get past.
type CommandError struct {
	Op     string
	Result vehicle.Result
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Result)
}

// Mission holds the wiring for one scripted flight. All fields except
// Observer are required.
type Mission struct {
	Vehicle  vehicle.Connector
	Plan     *plan.Plan
	Clock    clock.Clock
	Console  *console.Console
	Observer Observer
	Log      *slog.Logger

	// URL selects the vehicle endpoint, in the same form the command
	// line accepts.
	URL string

	// ConnectTimeout and LandTimeout bound the discovery and landing
	// wait loops. Zero means wait forever, which is the scripted
	// default.
	ConnectTimeout time.Duration
	LandTimeout    time.Duration
}

// Run flies the plan from connect to disarm. Failed commands print
// their result on the console and come back as a *CommandError;
// context cancellation unwinds between steps.
func (m *Mission) Run(ctx context.Context) error {
	if r := m.Vehicle.Connect(m.URL); !r.OK() {
		m.Console.Problem("Connection failed: %s", r)
		m.observe(Event{Kind: KindConnect, Result: r, Note: m.URL})
		return &CommandError{Op: OpConnection, Result: r}
	}
	defer m.Vehicle.Close()

	if err := m.waitConnected(ctx); err != nil {
		return err
	}
	m.observe(Event{Kind: KindConnect, Result: vehicle.ResultSuccess, Note: m.URL})

	sys, err := m.Vehicle.System()
	if err != nil {
		return fmt.Errorf("fetching discovered system: %w", err)
	}

	if err := m.pause(ctx, settleDelay); err != nil {
		return err
	}
	health := sys.Telemetry().Health()
	m.observe(Event{Kind: KindHealth, Health: &health})
	if health.GyrometerCalibrated {
		m.Console.Status("Gyro is calibrated")
		if err := m.pause(ctx, calibratedDelay); err != nil {
			return err
		}
	} else {
		// Advisory only. The mission arms regardless.
		m.Log.Debug("gyro reports uncalibrated, continuing")
	}

	armResult := sys.Action().Arm()
	m.observe(Event{Kind: KindArm, Result: armResult})
	if !armResult.OK() {
		m.Console.Problem("Arming failed: %s", armResult)
		return &CommandError{Op: OpArming, Result: armResult}
	}
	m.Console.Status("Armed")

	if err := m.flyOffboard(ctx, sys.Offboard()); err != nil {
		return err
	}

	landResult := sys.Action().Land()
	m.observe(Event{Kind: KindLand, Result: landResult})
	if !landResult.OK() {
		m.Console.Problem("Landing failed: %s", landResult)
		return &CommandError{Op: OpLanding, Result: landResult}
	}

	if err := m.waitLanded(ctx, sys.Telemetry()); err != nil {
		return err
	}
	m.Console.Telemetry("Landed!")
	m.observe(Event{Kind: KindLanded})

	// The vehicle auto-disarms on the ground if this is refused, so
	// the result is recorded but does not fail the run.
	disarmResult := sys.Action().Disarm()
	m.observe(Event{Kind: KindDisarm, Result: disarmResult})

	if err := m.pause(ctx, disarmGrace); err != nil {
		return err
	}
	m.Console.Status("Finished...")
	m.observe(Event{Kind: KindDone})
	return nil
}

// waitConnected polls discovery once a second until the vehicle's
// heartbeat shows up.
func (m *Mission) waitConnected(ctx context.Context) error {
	var deadline <-chan time.Time
	if m.ConnectTimeout > 0 {
		deadline = m.Clock.After(m.ConnectTimeout)
	}
	for !m.Vehicle.Connected() {
		m.Console.Status("Wait for system to connect via heartbeat")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("no heartbeat from vehicle within %s", m.ConnectTimeout)
		case <-m.Clock.After(pollInterval):
		}
	}
	return nil
}

// flyOffboard primes the setpoint stream, switches into offboard
// mode, and walks the plan.
func (m *Mission) flyOffboard(ctx context.Context, offboard vehicle.Offboard) error {
	// One setpoint must already be streaming before the mode switch,
	// or the vehicle rejects it.
	prime := vehicle.VelocityNED{}
	offboard.SetVelocityNED(prime)
	m.observe(Event{Kind: KindSetpoint, Velocity: &prime})

	startResult := offboard.Start()
	m.observe(Event{Kind: KindOffboardStart, Result: startResult})
	if !startResult.OK() {
		m.Console.Problem("Offboard start failed: %s", startResult)
		return &CommandError{Op: OpOffboardStart, Result: startResult}
	}
	m.Console.Offboard(offboardMode, "Offboard started")

	for _, sp := range m.Plan.Setpoints {
		if sp.Note != "" {
			m.Console.Offboard(offboardMode, "%s", sp.Note)
		}
		target := vehicle.PositionNED{North: sp.North, East: sp.East, Down: sp.Down, Yaw: sp.Yaw}
		offboard.SetPositionNED(target)
		m.observe(Event{Kind: KindSetpoint, Position: &target, Note: sp.Note})
		if sp.Hold > 0 {
			if err := m.pause(ctx, time.Duration(sp.Hold)); err != nil {
				return err
			}
		}
	}
	return nil
}

// waitLanded polls the landing progress once a second until the
// vehicle reports ground.
func (m *Mission) waitLanded(ctx context.Context, tel vehicle.Telemetry) error {
	var deadline <-chan time.Time
	if m.LandTimeout > 0 {
		deadline = m.Clock.After(m.LandTimeout)
	}
	for tel.InAir() {
		m.Console.Telemetry("Vehicle is landing...")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			return fmt.Errorf("still in air after %s", m.LandTimeout)
		case <-m.Clock.After(pollInterval):
		}
	}
	return nil
}

// pause waits out a scripted delay, or returns early when the run is
// canceled.
func (m *Mission) pause(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.Clock.After(d):
		return nil
	}
}

func (m *Mission) observe(e Event) {
	if m.Observer == nil {
		return
	}
	e.At = m.Clock.Now()
	m.Observer.Event(e)
}
