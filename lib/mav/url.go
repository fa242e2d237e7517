// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package mav

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bluenviron/gomavlib/v3"
)

// Connection URL grammar:
//
//	tcp://[server_host][:server_port]
//	udp://[bind_host][:bind_port]
//	serial:///path/to/serial/dev[:baudrate]
//
// Omitted parts take the simulator-friendly defaults below; the
// common case "udp://:14540" listens for a local PX4 SITL.
const (
	defaultTCPHost  = "127.0.0.1"
	defaultTCPPort  = 5760
	defaultUDPHost  = "0.0.0.0"
	defaultUDPPort  = 14540
	defaultBaudrate = 57600
)

// parseURL translates a connection URL into the gomavlib endpoint
// configuration for it.
func parseURL(url string) (gomavlib.EndpointConf, error) {
	scheme, rest, found := strings.Cut(url, "://")
	if !found {
		return nil, fmt.Errorf("connection url %q: missing scheme, want tcp://, udp://, or serial://", url)
	}

	switch scheme {
	case "tcp":
		address, err := hostPort(rest, defaultTCPHost, defaultTCPPort)
		if err != nil {
			return nil, fmt.Errorf("connection url %q: %w", url, err)
		}
		return gomavlib.EndpointTCPClient{Address: address}, nil

	case "udp":
		address, err := hostPort(rest, defaultUDPHost, defaultUDPPort)
		if err != nil {
			return nil, fmt.Errorf("connection url %q: %w", url, err)
		}
		return gomavlib.EndpointUDPServer{Address: address}, nil

	case "serial":
		device, baud, err := deviceBaud(rest)
		if err != nil {
			return nil, fmt.Errorf("connection url %q: %w", url, err)
		}
		return gomavlib.EndpointSerial{Device: device, Baud: baud}, nil

	default:
		return nil, fmt.Errorf("connection url %q: unsupported scheme %q", url, scheme)
	}
}

// hostPort fills in defaults for "", "host", ":port", and
// "host:port" forms.
func hostPort(s, defaultHost string, defaultPort int) (string, error) {
	host, portText, hasPort := strings.Cut(s, ":")
	if host == "" {
		host = defaultHost
	}
	port := defaultPort
	if hasPort {
		if portText == "" {
			return "", fmt.Errorf("empty port")
		}
		parsed, err := strconv.Atoi(portText)
		if err != nil || parsed < 1 || parsed > 65535 {
			return "", fmt.Errorf("invalid port %q", portText)
		}
		port = parsed
	}
	return fmt.Sprintf("%s:%d", host, port), nil
}

// deviceBaud splits "/dev/ttyUSB0:921600" into device and baudrate.
// The colon search runs from the right so device paths containing
// colons stay intact.
func deviceBaud(s string) (string, int, error) {
	if s == "" {
		return "", 0, fmt.Errorf("missing serial device path")
	}
	device := s
	baud := defaultBaudrate
	if i := strings.LastIndex(s, ":"); i >= 0 {
		candidate := s[i+1:]
		if parsed, err := strconv.Atoi(candidate); err == nil {
			if parsed < 1 {
				return "", 0, fmt.Errorf("invalid baudrate %q", candidate)
			}
			device = s[:i]
			baud = parsed
		}
	}
	if !strings.HasPrefix(device, "/") {
		return "", 0, fmt.Errorf("serial device %q is not an absolute path", device)
	}
	return device, baud, nil
}
