// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package vehicle

import "testing"

func TestFakeStartWithoutSetpoint(t *testing.T) {
	f := NewFake()
	if got := f.Start(); got != ResultNoSetpoint {
		t.Fatalf("Start() without setpoint = %v, want %v", got, ResultNoSetpoint)
	}

	f.SetVelocityNED(VelocityNED{})
	if got := f.Start(); got != ResultSuccess {
		t.Fatalf("Start() after setpoint = %v, want %v", got, ResultSuccess)
	}
}

func TestFakeStartScriptedFailureWins(t *testing.T) {
	f := NewFake()
	f.StartResult = ResultDenied
	f.SetPositionNED(PositionNED{})
	if got := f.Start(); got != ResultDenied {
		t.Fatalf("Start() = %v, want %v", got, ResultDenied)
	}
}

func TestFakeConnectedAfter(t *testing.T) {
	f := NewFake()
	f.ConnectedAfter = 2

	f.Connect("udp://:14540")
	for i := 0; i < 2; i++ {
		if f.Connected() {
			t.Fatalf("Connected() poll %d = true, want false", i+1)
		}
	}
	if !f.Connected() {
		t.Fatal("Connected() poll 3 = false, want true")
	}
	if got := f.ConnectedPolls(); got != 3 {
		t.Fatalf("ConnectedPolls() = %d, want 3", got)
	}
}

func TestFakeConnectedRequiresConnect(t *testing.T) {
	f := NewFake()
	if f.Connected() {
		t.Fatal("Connected() before Connect = true, want false")
	}
	if _, err := f.System(); err == nil {
		t.Fatal("System() before Connect succeeded, want error")
	}
}

func TestFakeFailedConnectNeverDiscovers(t *testing.T) {
	f := NewFake()
	f.ConnectResult = ResultConnectionRefused

	if got := f.Connect("tcp://:5760"); got != ResultConnectionRefused {
		t.Fatalf("Connect() = %v, want %v", got, ResultConnectionRefused)
	}
	if f.Connected() {
		t.Fatal("Connected() after failed Connect = true, want false")
	}
	if _, err := f.System(); err == nil {
		t.Fatal("System() after failed Connect succeeded, want error")
	}
}

func TestFakeInAirSequence(t *testing.T) {
	f := NewFake()
	f.InAirReadings = []bool{true, true, false}

	want := []bool{true, true, false, false, false}
	for i, w := range want {
		if got := f.InAir(); got != w {
			t.Fatalf("InAir() poll %d = %v, want %v", i+1, got, w)
		}
	}
	if got := f.InAirPolls(); got != len(want) {
		t.Fatalf("InAirPolls() = %d, want %d", got, len(want))
	}
}

func TestFakeRecordsSetpointOrder(t *testing.T) {
	f := NewFake()
	f.SetVelocityNED(VelocityNED{})
	f.SetPositionNED(PositionNED{Down: -0.75})
	f.SetPositionNED(PositionNED{North: 0.2, Down: -0.75})

	positions := f.Positions()
	if len(positions) != 2 {
		t.Fatalf("len(Positions()) = %d, want 2", len(positions))
	}
	if positions[1].North != 0.2 {
		t.Fatalf("Positions()[1].North = %v, want 0.2", positions[1].North)
	}
	if got := len(f.Velocities()); got != 1 {
		t.Fatalf("len(Velocities()) = %d, want 1", got)
	}

	wantOps := []string{"set velocity", "set position", "set position"}
	ops := f.Ops()
	if len(ops) != len(wantOps) {
		t.Fatalf("Ops() = %v, want %v", ops, wantOps)
	}
	for i := range wantOps {
		if ops[i] != wantOps[i] {
			t.Fatalf("Ops()[%d] = %q, want %q", i, ops[i], wantOps[i])
		}
	}
}

func TestResultStrings(t *testing.T) {
	cases := []struct {
		result Result
		want   string
	}{
		{ResultSuccess, "success"},
		{ResultDenied, "denied"},
		{ResultTimeout, "acknowledgment timeout"},
		{ResultNoSetpoint, "no setpoint set"},
		{ResultURLInvalid, "invalid connection url"},
		{Result(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.result.String(); got != c.want {
			t.Fatalf("Result(%d).String() = %q, want %q", c.result, got, c.want)
		}
	}
	if !ResultSuccess.OK() {
		t.Fatal("ResultSuccess.OK() = false, want true")
	}
	if ResultDenied.OK() {
		t.Fatal("ResultDenied.OK() = true, want false")
	}
}
