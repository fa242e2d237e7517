// Copyright 2026 The Mavscript Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at initial. Time moves only through
// Advance; every After, Sleep, and ticker registers a pending sleeper
// that fires when the clock passes its deadline.
//
// FakeClock is safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	c := &FakeClock{now: initial}
	c.changed = sync.NewCond(&c.mu)
	return c
}

// FakeClock is a deterministic Clock for tests. Goroutines calling
// Sleep or reading an After channel block until the test advances the
// clock past their deadline, so a test drives the schedule one wait
// at a time.
type FakeClock struct {
	mu       sync.Mutex
	now      time.Time
	sleepers []*sleeper
	changed  *sync.Cond
}

// sleeper is one pending wait: a one-shot After/Sleep, or a ticker
// when interval is non-zero.
type sleeper struct {
	deadline time.Time
	ch       chan time.Time
	interval time.Duration
	stopped  bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After returns a channel that receives once the clock advances past
// d from now. A d <= 0 fires immediately without registering a
// sleeper.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.now
		return ch
	}
	c.sleepers = append(c.sleepers, &sleeper{deadline: c.now.Add(d), ch: ch})
	c.changed.Broadcast()
	return ch
}

// NewTicker returns a Ticker firing every d in fake time. Panics if
// d <= 0.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker interval")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s := &sleeper{deadline: c.now.Add(d), ch: make(chan time.Time, 1), interval: d}
	c.sleepers = append(c.sleepers, s)
	c.changed.Broadcast()

	return &Ticker{
		C: s.ch,
		stop: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			s.stopped = true
		},
	}
}

// Sleep blocks until the clock advances past d from now. A d <= 0
// returns immediately.
func (c *FakeClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	<-c.After(d)
}

// Advance moves the clock forward by d and fires every sleeper whose
// deadline falls within the new time, in deadline order. Ticker sends
// are non-blocking; a tick that finds the buffer full is dropped,
// matching time.Ticker.
//
// Tickers whose interval divides the advance fire once per elapsed
// interval.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	target := c.now
	c.mu.Unlock()

	for {
		due := c.takeDue(target)
		if len(due) == 0 {
			return
		}
		sort.Slice(due, func(i, j int) bool {
			return due[i].deadline.Before(due[j].deadline)
		})
		for _, s := range due {
			select {
			case s.ch <- target:
			default:
			}
		}
	}
}

// takeDue removes sleepers due at or before target from the pending
// list, rescheduling tickers for their next interval.
func (c *FakeClock) takeDue(target time.Time) []*sleeper {
	c.mu.Lock()
	defer c.mu.Unlock()

	var due, keep []*sleeper
	for _, s := range c.sleepers {
		if s.stopped {
			continue
		}
		if s.deadline.After(target) {
			keep = append(keep, s)
			continue
		}
		due = append(due, s)
		if s.interval > 0 {
			s.deadline = s.deadline.Add(s.interval)
			keep = append(keep, s)
		}
	}
	c.sleepers = keep
	return due
}

// WaitForSleepers blocks until at least n waits are pending. Call it
// before Advance when the code under test sleeps in another
// goroutine: it guarantees the wait is registered before the clock
// moves.
func (c *FakeClock) WaitForSleepers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pendingLocked() < n {
		c.changed.Wait()
	}
}

// Pending returns the number of active pending waits.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingLocked()
}

func (c *FakeClock) pendingLocked() int {
	n := 0
	for _, s := range c.sleepers {
		if !s.stopped {
			n++
		}
	}
	return n
}
