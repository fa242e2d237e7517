// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts wall-clock pacing behind an injectable
// interface.
//
// Flight scripts are dead-reckoned: every hold, poll interval, and
// grace period is a literal wait, and those waits are the product's
// behavior rather than incidental scheduling. Code under test
// therefore never calls the time package directly; it accepts a Clock
// and the caller decides whether time is real or scripted.
//
// Real() is the production clock. Fake() stands still until the test
// calls Advance, so a mission that sleeps for minutes of simulated
// flight runs in microseconds and the test can assert the exact wait
// schedule:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go mission.Run(ctx)
//	c.WaitForSleepers(1)      // mission reached its first wait
//	c.Advance(time.Second)    // release it
//
// WaitForSleepers is the synchronization half of the pattern: it
// blocks until the goroutine under test has actually registered its
// wait, which removes the registration/advance race without resorting
// to real sleeps in tests.
package clock
