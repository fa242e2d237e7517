// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"testing"
	"time"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/mavscript/mavscript/lib/testutil"
	"github.com/mavscript/mavscript/lib/vehicle"
)

func requireSetpoint(t *testing.T, lk *fakeLink, what string) *common.MessageSetPositionTargetLocalNed {
	t.Helper()
	msg := testutil.RequireReceive(t, lk.writeCh, 5*time.Second, "%s", what)
	sp, ok := msg.(*common.MessageSetPositionTargetLocalNed)
	if !ok {
		t.Fatalf("%s: write = %T, want SetPositionTargetLocalNed", what, msg)
	}
	return sp
}

func TestStartWithoutSetpoint(t *testing.T) {
	n, lk, _ := newTestNode(t)
	discover(t, n, lk)

	if r := n.Start(); r != vehicle.ResultNoSetpoint {
		t.Fatalf("Start = %v, want %v", r, vehicle.ResultNoSetpoint)
	}
	select {
	case msg := <-lk.writeCh:
		t.Fatalf("unprimed Start wrote %#v", msg)
	default:
	}
}

func TestPositionSetpointFields(t *testing.T) {
	n, lk, _ := newTestNode(t)
	discover(t, n, lk)

	n.SetPositionNED(vehicle.PositionNED{North: 1, East: 2, Down: -0.75, Yaw: 90})
	sp := requireSetpoint(t, lk, "position setpoint")

	if sp.CoordinateFrame != common.MAV_FRAME_LOCAL_NED {
		t.Fatalf("frame = %v, want LOCAL_NED", sp.CoordinateFrame)
	}
	if sp.X != 1 || sp.Y != 2 || sp.Z != -0.75 {
		t.Fatalf("position = (%v, %v, %v), want (1, 2, -0.75)", sp.X, sp.Y, sp.Z)
	}
	if diff := sp.Yaw - 1.5707964; diff < -1e-4 || diff > 1e-4 {
		t.Fatalf("yaw = %v rad, want pi/2", sp.Yaw)
	}

	// Velocity, acceleration, and yaw rate are masked out; position
	// and yaw stay active.
	mustIgnore := common.POSITION_TARGET_TYPEMASK_VX_IGNORE |
		common.POSITION_TARGET_TYPEMASK_VY_IGNORE |
		common.POSITION_TARGET_TYPEMASK_VZ_IGNORE |
		common.POSITION_TARGET_TYPEMASK_AX_IGNORE |
		common.POSITION_TARGET_TYPEMASK_AY_IGNORE |
		common.POSITION_TARGET_TYPEMASK_AZ_IGNORE |
		common.POSITION_TARGET_TYPEMASK_YAW_RATE_IGNORE
	if sp.TypeMask != mustIgnore {
		t.Fatalf("type mask = %b, want %b", sp.TypeMask, mustIgnore)
	}
	if sp.TypeMask&common.POSITION_TARGET_TYPEMASK_X_IGNORE != 0 {
		t.Fatal("position bits masked out on a position setpoint")
	}
}

func TestVelocitySetpointFields(t *testing.T) {
	n, lk, _ := newTestNode(t)
	discover(t, n, lk)

	n.SetVelocityNED(vehicle.VelocityNED{North: 0.5, Down: -0.2, YawRate: 180})
	sp := requireSetpoint(t, lk, "velocity setpoint")

	if sp.Vx != 0.5 || sp.Vy != 0 || sp.Vz != -0.2 {
		t.Fatalf("velocity = (%v, %v, %v), want (0.5, 0, -0.2)", sp.Vx, sp.Vy, sp.Vz)
	}
	if diff := sp.YawRate - 3.1415927; diff < -1e-4 || diff > 1e-4 {
		t.Fatalf("yaw rate = %v rad/s, want pi", sp.YawRate)
	}
	if sp.TypeMask&common.POSITION_TARGET_TYPEMASK_X_IGNORE == 0 {
		t.Fatal("position bits active on a velocity setpoint")
	}
	if sp.TypeMask&common.POSITION_TARGET_TYPEMASK_VX_IGNORE != 0 {
		t.Fatal("velocity bits masked out on a velocity setpoint")
	}
}

func TestKeepaliveRepeatsCurrentSetpoint(t *testing.T) {
	n, lk, clk := newTestNode(t)
	discover(t, n, lk)

	n.SetPositionNED(vehicle.PositionNED{Down: -0.75})
	first := requireSetpoint(t, lk, "initial setpoint")
	if first.TimeBootMs != 0 {
		t.Fatalf("initial TimeBootMs = %d, want 0", first.TimeBootMs)
	}

	// One keepalive tick per interval, stamped with stream time.
	clk.WaitForSleepers(1)
	for i := 1; i <= 3; i++ {
		clk.Advance(keepaliveInterval)
		sp := requireSetpoint(t, lk, "keepalive resend")
		if sp.Z != -0.75 {
			t.Fatalf("resend %d Z = %v, want -0.75", i, sp.Z)
		}
		want := uint32(i) * uint32(keepaliveInterval/time.Millisecond)
		if sp.TimeBootMs != want {
			t.Fatalf("resend %d TimeBootMs = %d, want %d", i, sp.TimeBootMs, want)
		}
	}
}

func TestSetpointUpdateSwitchesStream(t *testing.T) {
	n, lk, clk := newTestNode(t)
	discover(t, n, lk)

	n.SetVelocityNED(vehicle.VelocityNED{})
	requireSetpoint(t, lk, "priming setpoint")

	n.SetPositionNED(vehicle.PositionNED{North: 0.2, Down: -0.75})
	sp := requireSetpoint(t, lk, "position update")
	if sp.X != 0.2 {
		t.Fatalf("X = %v, want 0.2", sp.X)
	}

	// The stream now carries the new target.
	clk.WaitForSleepers(1)
	clk.Advance(keepaliveInterval)
	sp = requireSetpoint(t, lk, "keepalive after switch")
	if sp.X != 0.2 || sp.Z != -0.75 {
		t.Fatalf("keepalive carries (%v, %v), want (0.2, -0.75)", sp.X, sp.Z)
	}
	if sp.TypeMask&common.POSITION_TARGET_TYPEMASK_X_IGNORE != 0 {
		t.Fatal("keepalive still masked as velocity after switch")
	}
}

func TestStartAfterPriming(t *testing.T) {
	n, lk, _ := newTestNode(t)
	discover(t, n, lk)

	n.SetVelocityNED(vehicle.VelocityNED{})
	requireSetpoint(t, lk, "priming setpoint")

	got := make(chan vehicle.Result, 1)
	go func() { got <- n.Start() }()

	msg := testutil.RequireReceive(t, lk.writeCh, 5*time.Second, "mode command")
	cmd, ok := msg.(*common.MessageCommandLong)
	if !ok {
		t.Fatalf("write = %T, want CommandLong", msg)
	}
	if cmd.Command != common.MAV_CMD_DO_SET_MODE {
		t.Fatalf("command = %v, want DO_SET_MODE", cmd.Command)
	}
	if cmd.Param1 != float32(common.MAV_MODE_FLAG_CUSTOM_MODE_ENABLED) {
		t.Fatalf("param1 = %v, want custom mode flag", cmd.Param1)
	}
	if cmd.Param2 != px4MainModeOffboard {
		t.Fatalf("param2 = %v, want offboard main mode", cmd.Param2)
	}

	lk.events <- ack(common.MAV_CMD_DO_SET_MODE, common.MAV_RESULT_ACCEPTED)
	if r := testutil.RequireReceive(t, got, 5*time.Second, "start result"); r != vehicle.ResultSuccess {
		t.Fatalf("Start = %v, want %v", r, vehicle.ResultSuccess)
	}
}

func TestStopEndsStreamAndHolds(t *testing.T) {
	n, lk, clk := newTestNode(t)
	discover(t, n, lk)

	n.SetPositionNED(vehicle.PositionNED{Down: -0.75})
	requireSetpoint(t, lk, "priming setpoint")
	clk.WaitForSleepers(1)

	got := make(chan vehicle.Result, 1)
	go func() { got <- n.Stop() }()

	msg := testutil.RequireReceive(t, lk.writeCh, 5*time.Second, "mode command")
	cmd := msg.(*common.MessageCommandLong)
	if cmd.Param2 != px4MainModeAuto || cmd.Param3 != px4SubModeLoiter {
		t.Fatalf("mode params = (%v, %v), want (auto, loiter)", cmd.Param2, cmd.Param3)
	}
	lk.events <- ack(common.MAV_CMD_DO_SET_MODE, common.MAV_RESULT_ACCEPTED)
	testutil.RequireReceive(t, got, 5*time.Second, "stop result")

	// Even if a stale tick races the shutdown, the cleared target
	// means nothing more goes out, and a later Start must be primed
	// again.
	clk.Advance(10 * keepaliveInterval)
	select {
	case sp := <-lk.writeCh:
		t.Fatalf("setpoint %#v after Stop", sp)
	default:
	}
	if r := n.Start(); r != vehicle.ResultNoSetpoint {
		t.Fatalf("Start after Stop = %v, want %v", r, vehicle.ResultNoSetpoint)
	}
}
