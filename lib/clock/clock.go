// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source injected into everything that paces,
// polls, or expires. Production code takes a Clock instead of calling
// time.Now, time.After, time.NewTicker, or time.Sleep.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the fire time once d has
	// elapsed. A d <= 0 fires immediately.
	After(d time.Duration) <-chan time.Time

	// NewTicker returns a Ticker delivering a tick every d on its C
	// channel. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker

	// Sleep blocks the calling goroutine for at least d.
	Sleep(d time.Duration)
}

// Ticker delivers periodic ticks on C. The channel has capacity 1,
// matching time.Ticker: a slow consumer drops ticks instead of
// queueing them.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop turns the ticker off. No tick is delivered after Stop returns;
// C is not closed.
func (t *Ticker) Stop() { t.stop() }
