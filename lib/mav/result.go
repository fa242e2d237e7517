// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"github.com/mavscript/mavscript/lib/vehicle"
)

// ackResult translates a COMMAND_ACK result into the vehicle Result
// vocabulary.
func ackResult(r common.MAV_RESULT) vehicle.Result {
	switch r {
	case common.MAV_RESULT_ACCEPTED:
		return vehicle.ResultSuccess
	case common.MAV_RESULT_TEMPORARILY_REJECTED:
		return vehicle.ResultTemporarilyRejected
	case common.MAV_RESULT_DENIED:
		return vehicle.ResultDenied
	case common.MAV_RESULT_UNSUPPORTED:
		return vehicle.ResultUnsupported
	case common.MAV_RESULT_FAILED:
		return vehicle.ResultFailed
	case common.MAV_RESULT_IN_PROGRESS:
		return vehicle.ResultInProgress
	case common.MAV_RESULT_CANCELLED:
		return vehicle.ResultCanceled
	default:
		return vehicle.ResultUnknown
	}
}
