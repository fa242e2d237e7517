// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"time"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/mavscript/mavscript/lib/vehicle"
)

// Health folds the cached SYS_STATUS sensor bits and position
// message arrival times into a snapshot. A sensor counts as
// calibrated when the vehicle reports it present, enabled, and
// healthy; position estimates count while their messages keep
// arriving. Home position is a one-shot broadcast, so having ever
// seen it is enough.
func (n *Node) Health() vehicle.Health {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.clk.Now()
	return vehicle.Health{
		GyrometerCalibrated:     n.sensorOKLocked(common.MAV_SYS_STATUS_SENSOR_3D_GYRO),
		AccelerometerCalibrated: n.sensorOKLocked(common.MAV_SYS_STATUS_SENSOR_3D_ACCEL),
		MagnetometerCalibrated:  n.sensorOKLocked(common.MAV_SYS_STATUS_SENSOR_3D_MAG),
		LocalPositionOK:         recent(now, n.lastLocalPosition),
		GlobalPositionOK:        recent(now, n.lastGlobalPosition),
		HomePositionOK:          n.homeSeen,
	}
}

// InAir reads the cached landed state. Takeoff and landing count as
// airborne; an undefined state (telemetry not yet received) counts
// as on the ground, which errs toward the loops that poll for
// landing completing rather than hanging.
func (n *Node) InAir() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch n.landedState {
	case common.MAV_LANDED_STATE_IN_AIR,
		common.MAV_LANDED_STATE_TAKEOFF,
		common.MAV_LANDED_STATE_LANDING:
		return true
	default:
		return false
	}
}

func (n *Node) sensorOKLocked(bit common.MAV_SYS_STATUS_SENSOR) bool {
	return n.sensorsPresent&bit != 0 &&
		n.sensorsEnabled&bit != 0 &&
		n.sensorsHealth&bit != 0
}

func recent(now, last time.Time) bool {
	return !last.IsZero() && now.Sub(last) <= positionWindow
}
