// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package console renders the operator-facing flight narrative:
// plain progress lines, blue telemetry readouts, red problems, and
// mode-tagged offboard script lines. Structured diagnostics belong to
// slog; this package is only for the lines a person watches during a
// flight.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Console writes styled flight progress lines. Progress, telemetry,
// and script lines go to the primary writer; problems go to the error
// writer.
type Console struct {
	out io.Writer
	err io.Writer

	telemetryStyle lipgloss.Style
	problemStyle   lipgloss.Style
	tagStyle       lipgloss.Style
}

// New returns a Console writing to out and errOut. When color is
// false every style renders as plain text; test output and piped
// output stay byte-stable either way.
func New(out, errOut io.Writer, color bool) *Console {
	// Fix the profile instead of auto-detecting: the caller already
	// decided color from the terminal and NO_COLOR, and re-detection
	// inside lipgloss would turn styling back off under tests where
	// the writer is a buffer.
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Console{
		out:            out,
		err:            errOut,
		telemetryStyle: renderer.NewStyle().Foreground(lipgloss.Color("4")),
		problemStyle:   renderer.NewStyle().Foreground(lipgloss.Color("1")),
		tagStyle:       renderer.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Status prints a plain progress line.
func (c *Console) Status(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Telemetry prints a vehicle-state line in the telemetry color.
func (c *Console) Telemetry(format string, args ...any) {
	fmt.Fprintln(c.out, c.telemetryStyle.Render(fmt.Sprintf(format, args...)))
}

// Problem prints a failure line in the error color.
func (c *Console) Problem(format string, args ...any) {
	fmt.Fprintln(c.err, c.problemStyle.Render(fmt.Sprintf(format, args...)))
}

// Offboard prints a script line tagged with the active setpoint
// frame, e.g. "[NED] Going to 0, 0, -0.75".
func (c *Console) Offboard(mode, format string, args ...any) {
	tag := c.tagStyle.Render("[" + mode + "]")
	fmt.Fprintf(c.out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
