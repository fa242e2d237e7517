// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"math"
	"time"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/mavscript/mavscript/lib/vehicle"
)

// keepaliveInterval is the offboard setpoint resend period. PX4
// falls out of offboard mode when the stream drops below roughly
// 2 Hz; 20 Hz leaves margin for link jitter.
const keepaliveInterval = 50 * time.Millisecond

// PX4 custom mode numbers used for offboard entry and exit.
const (
	px4MainModeOffboard = 6
	px4MainModeAuto     = 4
	px4SubModeLoiter    = 3
)

type setpointKind int

const (
	kindNone setpointKind = iota
	kindPosition
	kindVelocity
)

// SetPositionNED updates the streamed position target. The first
// setpoint of either kind starts the keepalive stream.
func (n *Node) SetPositionNED(p vehicle.PositionNED) {
	n.mu.Lock()
	n.spKind = kindPosition
	n.spPosition = p
	stream := n.ensureKeepaliveLocked()
	n.mu.Unlock()

	n.writeSetpoint()
	if stream != nil {
		go n.keepalive(stream)
	}
}

// SetVelocityNED updates the streamed velocity target.
func (n *Node) SetVelocityNED(v vehicle.VelocityNED) {
	n.mu.Lock()
	n.spKind = kindVelocity
	n.spVelocity = v
	stream := n.ensureKeepaliveLocked()
	n.mu.Unlock()

	n.writeSetpoint()
	if stream != nil {
		go n.keepalive(stream)
	}
}

// ensureKeepaliveLocked arms the keepalive stop channel on the first
// setpoint and returns it, or returns nil when the stream is already
// running. Caller holds n.mu.
func (n *Node) ensureKeepaliveLocked() chan struct{} {
	if n.keepaliveStop != nil {
		return nil
	}
	n.keepaliveStop = make(chan struct{})
	return n.keepaliveStop
}

// Start switches the vehicle into offboard mode. The stream must
// already be primed: without a setpoint to hold, the mode change is
// refused locally before bothering the vehicle.
func (n *Node) Start() vehicle.Result {
	n.mu.Lock()
	primed := n.spKind != kindNone
	n.mu.Unlock()
	if !primed {
		return vehicle.ResultNoSetpoint
	}
	return n.command(common.MAV_CMD_DO_SET_MODE, [7]float32{
		float32(common.MAV_MODE_FLAG_CUSTOM_MODE_ENABLED),
		px4MainModeOffboard,
		0,
	})
}

// Stop leaves offboard mode for a loiter hold and ends the setpoint
// stream. A later Start needs a fresh setpoint first.
func (n *Node) Stop() vehicle.Result {
	n.mu.Lock()
	if n.keepaliveStop != nil {
		close(n.keepaliveStop)
		n.keepaliveStop = nil
	}
	n.spKind = kindNone
	n.mu.Unlock()

	return n.command(common.MAV_CMD_DO_SET_MODE, [7]float32{
		float32(common.MAV_MODE_FLAG_CUSTOM_MODE_ENABLED),
		px4MainModeAuto,
		px4SubModeLoiter,
	})
}

// keepalive re-sends the current setpoint until stopped. The vehicle
// treats the stream itself as the offboard liveness signal.
func (n *Node) keepalive(stop chan struct{}) {
	ticker := n.clk.NewTicker(keepaliveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n.writeSetpoint()
		}
	}
}

// writeSetpoint sends the current target once. Send errors only log
// at debug level: the stream retries on the next tick, and a broken
// link surfaces through command acknowledgments instead.
func (n *Node) writeSetpoint() {
	n.mu.Lock()
	kind := n.spKind
	position := n.spPosition
	velocity := n.spVelocity
	lk := n.link
	target := n.systemID
	started := n.started
	n.mu.Unlock()

	if kind == kindNone || lk == nil {
		return
	}

	msg := &common.MessageSetPositionTargetLocalNed{
		TimeBootMs:      uint32(n.clk.Now().Sub(started).Milliseconds()),
		TargetSystem:    target,
		TargetComponent: autopilotComponent,
		CoordinateFrame: common.MAV_FRAME_LOCAL_NED,
	}
	switch kind {
	case kindPosition:
		msg.TypeMask = common.POSITION_TARGET_TYPEMASK_VX_IGNORE |
			common.POSITION_TARGET_TYPEMASK_VY_IGNORE |
			common.POSITION_TARGET_TYPEMASK_VZ_IGNORE |
			common.POSITION_TARGET_TYPEMASK_AX_IGNORE |
			common.POSITION_TARGET_TYPEMASK_AY_IGNORE |
			common.POSITION_TARGET_TYPEMASK_AZ_IGNORE |
			common.POSITION_TARGET_TYPEMASK_YAW_RATE_IGNORE
		msg.X = position.North
		msg.Y = position.East
		msg.Z = position.Down
		msg.Yaw = radians(position.Yaw)
	case kindVelocity:
		msg.TypeMask = common.POSITION_TARGET_TYPEMASK_X_IGNORE |
			common.POSITION_TARGET_TYPEMASK_Y_IGNORE |
			common.POSITION_TARGET_TYPEMASK_Z_IGNORE |
			common.POSITION_TARGET_TYPEMASK_AX_IGNORE |
			common.POSITION_TARGET_TYPEMASK_AY_IGNORE |
			common.POSITION_TARGET_TYPEMASK_AZ_IGNORE |
			common.POSITION_TARGET_TYPEMASK_YAW_IGNORE
		msg.Vx = velocity.North
		msg.Vy = velocity.East
		msg.Vz = velocity.Down
		msg.YawRate = radians(velocity.YawRate)
	}

	if err := lk.Write(msg); err != nil {
		n.log.Debug("setpoint write failed", "error", err)
	}
}

func radians(degrees float32) float32 {
	return degrees * math.Pi / 180
}
