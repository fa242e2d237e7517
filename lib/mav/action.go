// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"math"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/mavscript/mavscript/lib/vehicle"
)

// Arm spins the motors up.
func (n *Node) Arm() vehicle.Result {
	return n.command(common.MAV_CMD_COMPONENT_ARM_DISARM, [7]float32{1})
}

// Disarm stops the motors. In flight the vehicle denies this.
func (n *Node) Disarm() vehicle.Result {
	return n.command(common.MAV_CMD_COMPONENT_ARM_DISARM, [7]float32{0})
}

// Land switches to the autopilot's landing mode at the current
// position. NaN parameters tell the vehicle to use its own current
// yaw and location.
func (n *Node) Land() vehicle.Result {
	unset := float32(math.NaN())
	return n.command(common.MAV_CMD_NAV_LAND, [7]float32{
		0,     // abort altitude: autopilot default
		0,     // precision land: disabled
		0,     // reserved
		unset, // yaw
		unset, // latitude
		unset, // longitude
		unset, // altitude
	})
}
