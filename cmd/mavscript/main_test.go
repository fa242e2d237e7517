// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mavscript/mavscript/lib/blackbox"
	"github.com/mavscript/mavscript/lib/flight"
	"github.com/mavscript/mavscript/lib/plan"
	"github.com/mavscript/mavscript/lib/vehicle"
	"github.com/mavscript/mavscript/lib/version"
)

var usageLines = []string{
	"Usage : mavscript [flags] <connection_url>",
	"Connection URL format should be :",
	" For TCP : tcp://[server_host][:server_port]",
	" For UDP : udp://[bind_host][:bind_port]",
	" For Serial : serial:///path/to/serial/dev[:baudrate]",
	"For example, to connect to the simulator use URL: udp://:14540",
}

func TestUsagePrintedWithoutArgs(t *testing.T) {
	var out, errs bytes.Buffer
	err := run(nil, &out, &errs)
	if !errors.Is(err, errUsage) {
		t.Fatalf("run() error = %v, want errUsage", err)
	}
	for _, line := range usageLines {
		if !strings.Contains(out.String(), line+"\n") {
			t.Errorf("usage output missing %q:\n%s", line, out.String())
		}
	}
	for _, flag := range []string{"--plan", "--blackbox", "--connect-timeout", "--land-timeout", "--no-color", "--verbose", "--version"} {
		if !strings.Contains(out.String(), flag) {
			t.Errorf("usage output missing flag %s", flag)
		}
	}
	if errs.Len() != 0 {
		t.Errorf("unexpected stderr: %q", errs.String())
	}
}

func TestUsagePrintedForExtraArgs(t *testing.T) {
	var out, errs bytes.Buffer
	err := run([]string{"udp://:14540", "udp://:14541"}, &out, &errs)
	if !errors.Is(err, errUsage) {
		t.Fatalf("run() error = %v, want errUsage", err)
	}
	if !strings.Contains(out.String(), usageLines[0]) {
		t.Errorf("usage output missing first line:\n%s", out.String())
	}
}

func TestHelpPrintsUsage(t *testing.T) {
	var out, errs bytes.Buffer
	if err := run([]string{"--help"}, &out, &errs); err != nil {
		t.Fatalf("run(--help) error = %v", err)
	}
	if !strings.Contains(out.String(), usageLines[0]) {
		t.Errorf("help output missing usage:\n%s", out.String())
	}
}

func TestVersionFlag(t *testing.T) {
	var out, errs bytes.Buffer
	if err := run([]string{"--version"}, &out, &errs); err != nil {
		t.Fatalf("run(--version) error = %v", err)
	}
	want := fmt.Sprintf("mavscript %s\n", version.Info())
	if out.String() != want {
		t.Errorf("version output = %q, want %q", out.String(), want)
	}
}

func TestUnknownFlag(t *testing.T) {
	var out, errs bytes.Buffer
	err := run([]string{"--bogus", "udp://:14540"}, &out, &errs)
	if err == nil || errors.Is(err, errUsage) {
		t.Fatalf("run() error = %v, want unknown flag error", err)
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error %q does not name the flag", err)
	}
}

func TestBadPlanPath(t *testing.T) {
	var out, errs bytes.Buffer
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	err := run([]string{"--plan", missing, "udp://:14540"}, &out, &errs)
	if err == nil || !strings.Contains(err.Error(), "loading flight plan") {
		t.Fatalf("run() error = %v, want flight plan load failure", err)
	}
}

func TestInvalidURLFailsOnConsole(t *testing.T) {
	var out, errs bytes.Buffer
	err := run([]string{"ftp://somewhere"}, &out, &errs)
	var cmdErr *flight.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("run() error = %v, want *flight.CommandError", err)
	}
	if cmdErr.Result != vehicle.ResultURLInvalid {
		t.Errorf("Result = %v, want ResultURLInvalid", cmdErr.Result)
	}
	if got := errs.String(); got != "Connection failed: invalid connection url\n" {
		t.Errorf("stderr = %q", got)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected stdout: %q", out.String())
	}
}

func TestBlackboxRecordsConnectFailure(t *testing.T) {
	var out, errs bytes.Buffer
	path := filepath.Join(t.TempDir(), "flight.rec")
	err := run([]string{"--blackbox", path, "ftp://somewhere"}, &out, &errs)
	var cmdErr *flight.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("run() error = %v, want *flight.CommandError", err)
	}

	hdr, records, err := blackbox.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if hdr.Program != "mavscript" {
		t.Errorf("Program = %q", hdr.Program)
	}
	if hdr.ConnectionURL != "ftp://somewhere" {
		t.Errorf("ConnectionURL = %q", hdr.ConnectionURL)
	}
	if hdr.PlanName != plan.Default().Name {
		t.Errorf("PlanName = %q", hdr.PlanName)
	}
	wantDigest, err := plan.Default().Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if hdr.PlanDigest != wantDigest {
		t.Errorf("PlanDigest = %q, want %q", hdr.PlanDigest, wantDigest)
	}
	if hdr.StartedAt.IsZero() {
		t.Error("StartedAt not stamped")
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Kind != string(flight.KindConnect) {
		t.Errorf("Kind = %q", records[0].Kind)
	}
	if records[0].Result != vehicle.ResultURLInvalid.String() {
		t.Errorf("Result = %q", records[0].Result)
	}
	if records[0].Note != "ftp://somewhere" {
		t.Errorf("Note = %q", records[0].Note)
	}
}

func TestUnwritableBlackboxPath(t *testing.T) {
	var out, errs bytes.Buffer
	path := filepath.Join(t.TempDir(), "no-such-dir", "flight.rec")
	err := run([]string{"--blackbox", path, "udp://:14540"}, &out, &errs)
	if err == nil || !strings.Contains(err.Error(), "starting flight record") {
		t.Fatalf("run() error = %v, want flight record failure", err)
	}
}
