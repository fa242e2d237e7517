// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// mavscript flies a scripted offboard mission against a MAVLink
// vehicle: connect, wait for heartbeat, arm, fly a setpoint plan,
// land, disarm. The plan defaults to the built-in square hop and
// descent ramp; --plan loads a YAML script instead.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mavscript/mavscript/lib/blackbox"
	"github.com/mavscript/mavscript/lib/clock"
	"github.com/mavscript/mavscript/lib/console"
	"github.com/mavscript/mavscript/lib/flight"
	"github.com/mavscript/mavscript/lib/mav"
	"github.com/mavscript/mavscript/lib/plan"
	"github.com/mavscript/mavscript/lib/process"
	"github.com/mavscript/mavscript/lib/version"
)

// errUsage marks invocations that already printed the usage text.
var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	var cmdErr *flight.CommandError
	switch {
	case errors.Is(err, errUsage):
		os.Exit(1)
	case errors.As(err, &cmdErr):
		// The console already reported the failure.
		os.Exit(1)
	default:
		process.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("mavscript", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	planPath := flags.String("plan", "", "fly a YAML flight plan instead of the built-in one")
	recordPath := flags.String("blackbox", "", "write a compressed flight record to this file")
	connectTimeout := flags.Duration("connect-timeout", 0, "give up waiting for a heartbeat after this long (0 waits forever)")
	landTimeout := flags.Duration("land-timeout", 0, "give up waiting for touchdown after this long (0 waits forever)")
	noColor := flags.Bool("no-color", false, "disable colored console output")
	verbose := flags.BoolP("verbose", "v", false, "log MAVLink adapter diagnostics")
	showVersion := flags.Bool("version", false, "print version information and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(stdout, flags)
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Fprintf(stdout, "mavscript %s\n", version.Info())
		return nil
	}
	if len(flags.Args()) != 1 {
		printUsage(stdout, flags)
		return errUsage
	}
	url := flags.Arg(0)

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fp := plan.Default()
	if *planPath != "" {
		var err error
		fp, err = plan.Load(*planPath)
		if err != nil {
			return fmt.Errorf("loading flight plan: %w", err)
		}
	}

	clk := clock.Real()

	var observer flight.Observer
	if *recordPath != "" {
		digest, err := fp.Digest()
		if err != nil {
			return fmt.Errorf("digesting flight plan: %w", err)
		}
		recorder, err := blackbox.Create(*recordPath, blackbox.Header{
			Program:       "mavscript",
			Version:       version.Short(),
			ConnectionURL: url,
			PlanName:      fp.Name,
			PlanDigest:    digest,
			StartedAt:     clk.Now(),
		}, logger)
		if err != nil {
			return fmt.Errorf("starting flight record: %w", err)
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				logger.Warn("flight record close failed", "error", err)
			}
		}()
		observer = recorder
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mission := &flight.Mission{
		Vehicle:        mav.NewNode(clk, logger),
		Plan:           fp,
		Clock:          clk,
		Console:        console.New(stdout, stderr, useColor(stdout, *noColor)),
		Observer:       observer,
		Log:            logger,
		URL:            url,
		ConnectTimeout: *connectTimeout,
		LandTimeout:    *landTimeout,
	}
	if err := mission.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}
	return nil
}

// useColor decides whether console output gets ANSI colors: only on a
// real terminal, and never when --no-color or NO_COLOR asks it off.
func useColor(stdout io.Writer, noColor bool) bool {
	if noColor || termenv.EnvNoColor() {
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage : mavscript [flags] <connection_url>")
	fmt.Fprintln(w, "Connection URL format should be :")
	fmt.Fprintln(w, " For TCP : tcp://[server_host][:server_port]")
	fmt.Fprintln(w, " For UDP : udp://[bind_host][:bind_port]")
	fmt.Fprintln(w, " For Serial : serial:///path/to/serial/dev[:baudrate]")
	fmt.Fprintln(w, "For example, to connect to the simulator use URL: udp://:14540")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
}
