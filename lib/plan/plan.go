// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package plan defines flight plans: the ordered setpoint script a
// mission flies in offboard mode.
//
// The built-in [Default] plan is a short scripted hop (climb to
// 0.75 m, nudge north, stepped descent) and needs no file. Operators
// can substitute their own script with a YAML file:
//
//	name: survey-hop
//	setpoints:
//	  - {north: 0, east: 0, down: -1.2, yaw: 0, hold: 3s, note: "Climb"}
//	  - {north: 0, east: 0, down: 0, yaw: 0}
//
// A plan says nothing about arming, landing, or pacing between
// mission phases; it is only the offboard segment. The final setpoint
// usually has no hold: the runner hands control to the landing mode
// immediately after sending it.
package plan

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan is an ordered offboard setpoint script.
type Plan struct {
	// Name identifies the plan in console output and flight records.
	Name string `yaml:"name"`

	// Setpoints are flown in order. Each is sent once, then held for
	// its hold duration before the next send.
	Setpoints []Setpoint `yaml:"setpoints"`
}

// Setpoint is one scripted position target in the local
// north-east-down frame. Down is negative above the takeoff origin.
type Setpoint struct {
	North float32 `yaml:"north"`
	East  float32 `yaml:"east"`
	Down  float32 `yaml:"down"`
	Yaw   float32 `yaml:"yaw"`

	// Hold is how long to keep this target active before moving on.
	// The vehicle needs the hold to actually get there; setpoint
	// streaming is open-loop.
	Hold Duration `yaml:"hold,omitempty"`

	// Note is the console line printed when the setpoint goes out.
	Note string `yaml:"note,omitempty"`
}

// Duration wraps time.Duration so YAML plans can write "400ms" or
// "2s" instead of nanosecond integers.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing hold duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in scripted hop: rise to height, nudge
// 0.2 m north and back, then descend in five 400 ms steps before
// handing over to the landing mode. The descent targets sit 0.15 m
// below the interpolated height so the controller keeps a little
// downward authority through the whole ramp.
func Default() *Plan {
	const height = 0.75
	const descentSteps = 5

	p := &Plan{
		Name: "offboard-position",
		Setpoints: []Setpoint{
			{Down: 0, Hold: Duration(time.Second), Note: "Going to 0, 0, -0.0"},
			{Down: -height, Hold: Duration(4 * time.Second), Note: "Going to 0, 0, -0.75"},
			{North: 0.2, Down: -height, Hold: Duration(2 * time.Second), Note: "Going to 0.2, 0, -0.75"},
			{Down: -height, Hold: Duration(2 * time.Second), Note: "Going to 0, 0, -0.75"},
		},
	}
	for i := 0; i < descentSteps; i++ {
		down := float32(-height) + float32(height)/descentSteps*float32(i) + 0.15
		p.Setpoints = append(p.Setpoints, Setpoint{
			Down: down,
			Hold: Duration(400 * time.Millisecond),
			Note: fmt.Sprintf("Descending to %.2f", down),
		})
	}
	p.Setpoints = append(p.Setpoints, Setpoint{Note: "Going to 0, 0, 0"})
	return p
}
