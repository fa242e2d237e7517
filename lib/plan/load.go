// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a YAML plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return &p, nil
}

// Validate checks the plan without mutating it.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Setpoints) == 0 {
		return fmt.Errorf("at least one setpoint is required")
	}
	for i, sp := range p.Setpoints {
		for _, f := range []struct {
			name  string
			value float32
		}{
			{"north", sp.North},
			{"east", sp.East},
			{"down", sp.Down},
			{"yaw", sp.Yaw},
		} {
			v := float64(f.value)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("setpoint %d: %s is not a finite number", i, f.name)
			}
		}
		if sp.Hold < 0 {
			return fmt.Errorf("setpoint %d: hold must not be negative", i)
		}
	}
	return nil
}
