// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"time"

	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/mavscript/mavscript/lib/vehicle"
)

const (
	// commandAttempts is how many times a command is sent before the
	// acknowledgment wait gives up. Resends carry an incremented
	// confirmation counter so the vehicle can deduplicate.
	commandAttempts = 3

	// ackWait is the silence window per attempt.
	ackWait = 500 * time.Millisecond

	// progressWait extends the window after an in-progress
	// acknowledgment, which promises a terminal one later.
	progressWait = 3 * time.Second
)

// command sends a COMMAND_LONG and waits for the matching
// COMMAND_ACK. Acks are correlated by command ID, which is enough
// because the runner issues one command at a time.
func (n *Node) command(cmd common.MAV_CMD, params [7]float32) vehicle.Result {
	n.mu.Lock()
	if !n.discovered || n.link == nil {
		n.mu.Unlock()
		return vehicle.ResultNoSystem
	}
	target := n.systemID
	lk := n.link
	waiter := make(chan *common.MessageCommandAck, 1)
	n.acks[cmd] = waiter
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		delete(n.acks, cmd)
		n.mu.Unlock()
	}()

	for attempt := 0; attempt < commandAttempts; attempt++ {
		err := lk.Write(&common.MessageCommandLong{
			TargetSystem:    target,
			TargetComponent: autopilotComponent,
			Command:         cmd,
			Confirmation:    uint8(attempt),
			Param1:          params[0],
			Param2:          params[1],
			Param3:          params[2],
			Param4:          params[3],
			Param5:          params[4],
			Param6:          params[5],
			Param7:          params[6],
		})
		if err != nil {
			n.log.Debug("command write failed", "command", int(cmd), "error", err)
			return vehicle.ResultFailed
		}

		deadline := n.clk.After(ackWait)
	wait:
		for {
			select {
			case ack := <-waiter:
				result := ackResult(ack.Result)
				if result == vehicle.ResultInProgress {
					n.log.Debug("command in progress", "command", int(cmd), "progress", ack.Progress)
					deadline = n.clk.After(progressWait)
					continue
				}
				return result
			case <-deadline:
				break wait
			}
		}
		n.log.Debug("command ack silence, resending", "command", int(cmd), "attempt", attempt+1)
	}
	return vehicle.ResultTimeout
}
