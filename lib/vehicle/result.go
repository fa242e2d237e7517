// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package vehicle

// Result is the outcome of a command-shaped vehicle call. The first
// block mirrors the MAVLink command acknowledgment results; the rest
// are produced by the client side (connection setup, acknowledgment
// waits, offboard preconditions).
type Result int

const (
	ResultUnknown Result = iota
	ResultSuccess
	ResultTemporarilyRejected
	ResultDenied
	ResultUnsupported
	ResultFailed
	ResultInProgress
	ResultCanceled

	ResultTimeout
	ResultNoSystem
	ResultNoSetpoint
	ResultConnectionRefused
	ResultURLInvalid
)

var resultNames = map[Result]string{
	ResultUnknown:             "unknown",
	ResultSuccess:             "success",
	ResultTemporarilyRejected: "temporarily rejected",
	ResultDenied:              "denied",
	ResultUnsupported:         "unsupported",
	ResultFailed:              "failed",
	ResultInProgress:          "in progress",
	ResultCanceled:            "canceled",
	ResultTimeout:             "acknowledgment timeout",
	ResultNoSystem:            "no system discovered",
	ResultNoSetpoint:          "no setpoint set",
	ResultConnectionRefused:   "connection refused",
	ResultURLInvalid:          "invalid connection url",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "unknown"
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r == ResultSuccess }
