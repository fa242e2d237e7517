// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bluenviron/gomavlib/v3"
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"
	"github.com/bluenviron/gomavlib/v3/pkg/message"

	"github.com/mavscript/mavscript/lib/clock"
	"github.com/mavscript/mavscript/lib/vehicle"
)

const (
	// outSystemID is our own system ID on the link, in the range
	// ground stations conventionally use.
	outSystemID = 245

	// autopilotComponent is MAV_COMP_ID_AUTOPILOT1, the component
	// commands target and discovery listens to.
	autopilotComponent = 1

	// heartbeatLiveness bounds how stale the last heartbeat may be
	// for Connected to still report true.
	heartbeatLiveness = 3 * time.Second

	// positionWindow bounds how stale a position message may be for
	// the corresponding health flag to hold.
	positionWindow = 3 * time.Second
)

// MAVLink message IDs requested from the vehicle at discovery.
const (
	msgIDSysStatus        = 1
	msgIDLocalPositionNed = 32
	msgIDExtendedSysState = 245
)

// link is the slice of a gomavlib node the adapter consumes,
// separated so tests can drive the event loop without a transport.
type link interface {
	Events() <-chan gomavlib.Event
	Write(msg message.Message) error
	Close()
}

type nodeLink struct{ node *gomavlib.Node }

func (l nodeLink) Events() <-chan gomavlib.Event   { return l.node.Events() }
func (l nodeLink) Write(msg message.Message) error { return l.node.WriteMessageAll(msg) }
func (l nodeLink) Close()                          { l.node.Close() }

// Node implements vehicle.Connector, vehicle.System, and the three
// capability interfaces over one MAVLink link.
type Node struct {
	clk clock.Clock
	log *slog.Logger

	// dial opens the transport. Swapped out by tests.
	dial func(gomavlib.EndpointConf) (link, error)

	mu       sync.Mutex
	link     link
	loopDone chan struct{}
	started  time.Time

	// Pending command acknowledgments, one waiter per command ID.
	acks map[common.MAV_CMD]chan *common.MessageCommandAck

	// Discovery and liveness.
	discovered    bool
	systemID      byte
	lastHeartbeat time.Time

	// Telemetry cache, folded from inbound frames.
	sensorsPresent     common.MAV_SYS_STATUS_SENSOR
	sensorsEnabled     common.MAV_SYS_STATUS_SENSOR
	sensorsHealth      common.MAV_SYS_STATUS_SENSOR
	landedState        common.MAV_LANDED_STATE
	lastLocalPosition  time.Time
	lastGlobalPosition time.Time
	homeSeen           bool

	// Offboard stream state.
	spKind        setpointKind
	spPosition    vehicle.PositionNED
	spVelocity    vehicle.VelocityNED
	keepaliveStop chan struct{}
}

var (
	_ vehicle.Connector = (*Node)(nil)
	_ vehicle.System    = (*Node)(nil)
	_ vehicle.Action    = (*Node)(nil)
	_ vehicle.Offboard  = (*Node)(nil)
	_ vehicle.Telemetry = (*Node)(nil)
)

// NewNode returns an unconnected Node. The logger carries adapter
// diagnostics only; operator-facing lines belong to the console.
func NewNode(clk clock.Clock, logger *slog.Logger) *Node {
	return &Node{
		clk:  clk,
		log:  logger,
		dial: dialGomavlib,
		acks: make(map[common.MAV_CMD]chan *common.MessageCommandAck),
	}
}

func dialGomavlib(endpoint gomavlib.EndpointConf) (link, error) {
	node, err := gomavlib.NewNode(gomavlib.NodeConf{
		Endpoints:   []gomavlib.EndpointConf{endpoint},
		Dialect:     common.Dialect,
		OutVersion:  gomavlib.V2,
		OutSystemID: outSystemID,
	})
	if err != nil {
		return nil, err
	}
	return nodeLink{node: node}, nil
}

// Connect parses url, opens the endpoint, and starts the event loop.
// Discovery is asynchronous: poll Connected afterwards.
func (n *Node) Connect(url string) vehicle.Result {
	endpoint, err := parseURL(url)
	if err != nil {
		n.log.Debug("connection url rejected", "url", url, "error", err)
		return vehicle.ResultURLInvalid
	}

	lk, err := n.dial(endpoint)
	if err != nil {
		n.log.Debug("endpoint open failed", "url", url, "error", err)
		return vehicle.ResultConnectionRefused
	}

	n.mu.Lock()
	n.link = lk
	n.started = n.clk.Now()
	n.loopDone = make(chan struct{})
	n.mu.Unlock()

	go n.loop(lk)
	n.log.Debug("link up", "url", url)
	return vehicle.ResultSuccess
}

// Connected reports whether the vehicle has been discovered and its
// last heartbeat is within the liveness window.
func (n *Node) Connected() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.discovered && n.clk.Now().Sub(n.lastHeartbeat) <= heartbeatLiveness
}

// System returns the node itself once a vehicle is discovered.
func (n *Node) System() (vehicle.System, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.discovered {
		return nil, fmt.Errorf("no system discovered")
	}
	return n, nil
}

func (n *Node) Action() vehicle.Action       { return n }
func (n *Node) Offboard() vehicle.Offboard   { return n }
func (n *Node) Telemetry() vehicle.Telemetry { return n }

// Close stops the offboard stream, tears the link down, and waits
// for the event loop to drain.
func (n *Node) Close() error {
	n.mu.Lock()
	lk := n.link
	n.link = nil
	done := n.loopDone
	if n.keepaliveStop != nil {
		close(n.keepaliveStop)
		n.keepaliveStop = nil
	}
	n.mu.Unlock()

	if lk == nil {
		return nil
	}
	lk.Close()
	<-done
	return nil
}

// loop consumes the inbound event stream until the link closes.
func (n *Node) loop(lk link) {
	defer close(n.loopDone)
	for evt := range lk.Events() {
		switch e := evt.(type) {
		case *gomavlib.EventFrame:
			n.handleFrame(e)
		case *gomavlib.EventChannelOpen:
			n.log.Debug("channel open", "channel", e.Channel.String())
		case *gomavlib.EventChannelClose:
			n.log.Debug("channel close", "channel", e.Channel.String())
		case *gomavlib.EventParseError:
			n.log.Debug("frame parse error", "error", e.Error)
		}
	}
}

func (n *Node) handleFrame(e *gomavlib.EventFrame) {
	if hb, ok := e.Message().(*common.MessageHeartbeat); ok {
		n.handleHeartbeat(e.SystemID(), e.ComponentID(), hb)
		return
	}

	n.mu.Lock()
	ours := n.discovered && e.SystemID() == n.systemID
	n.mu.Unlock()
	if !ours {
		return
	}

	switch msg := e.Message().(type) {
	case *common.MessageSysStatus:
		n.mu.Lock()
		n.sensorsPresent = msg.OnboardControlSensorsPresent
		n.sensorsEnabled = msg.OnboardControlSensorsEnabled
		n.sensorsHealth = msg.OnboardControlSensorsHealth
		n.mu.Unlock()

	case *common.MessageExtendedSysState:
		n.mu.Lock()
		n.landedState = msg.LandedState
		n.mu.Unlock()

	case *common.MessageLocalPositionNed:
		n.mu.Lock()
		n.lastLocalPosition = n.clk.Now()
		n.mu.Unlock()

	case *common.MessageGlobalPositionInt:
		n.mu.Lock()
		n.lastGlobalPosition = n.clk.Now()
		n.mu.Unlock()

	case *common.MessageHomePosition:
		n.mu.Lock()
		n.homeSeen = true
		n.mu.Unlock()

	case *common.MessageStatustext:
		n.log.Info("vehicle status", "severity", int(msg.Severity), "text", msg.Text)

	case *common.MessageCommandAck:
		n.routeAck(msg)
	}
}

// handleHeartbeat drives discovery and the liveness window. Only
// autopilot components count; our own heartbeats and other ground
// stations carry MAV_AUTOPILOT_INVALID and are ignored.
func (n *Node) handleHeartbeat(systemID, componentID byte, hb *common.MessageHeartbeat) {
	if componentID != autopilotComponent || hb.Autopilot == common.MAV_AUTOPILOT_INVALID {
		return
	}

	n.mu.Lock()
	first := !n.discovered
	if first {
		n.discovered = true
		n.systemID = systemID
	}
	if systemID == n.systemID {
		n.lastHeartbeat = n.clk.Now()
	}
	n.mu.Unlock()

	if first {
		n.log.Info("vehicle discovered",
			"system_id", systemID,
			"autopilot", int(hb.Autopilot),
			"type", int(hb.Type))
		n.requestTelemetryStreams(systemID)
	}
}

// requestTelemetryStreams asks the vehicle to emit the messages the
// telemetry cache folds, at 1 Hz. Best-effort: no acknowledgment
// wait, and a vehicle that ignores the request just leaves the
// corresponding health flags down.
func (n *Node) requestTelemetryStreams(systemID byte) {
	n.mu.Lock()
	lk := n.link
	n.mu.Unlock()
	if lk == nil {
		return
	}

	for _, id := range []uint32{msgIDSysStatus, msgIDExtendedSysState, msgIDLocalPositionNed} {
		err := lk.Write(&common.MessageCommandLong{
			TargetSystem:    systemID,
			TargetComponent: autopilotComponent,
			Command:         common.MAV_CMD_SET_MESSAGE_INTERVAL,
			Param1:          float32(id),
			Param2:          1e6, // microseconds between messages
		})
		if err != nil {
			n.log.Debug("stream request failed", "message_id", id, "error", err)
		}
	}
}

func (n *Node) routeAck(ack *common.MessageCommandAck) {
	n.mu.Lock()
	waiter := n.acks[ack.Command]
	n.mu.Unlock()

	if waiter == nil {
		n.log.Debug("unsolicited command ack", "command", int(ack.Command), "result", int(ack.Result))
		return
	}
	select {
	case waiter <- ack:
	default:
	}
}
