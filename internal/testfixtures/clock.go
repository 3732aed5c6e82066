// Package testfixtures provides deterministic clocks, identity generators
// and entity fixtures for engine tests.
package testfixtures

import (
	"sync"
	"time"
)

// ReferenceTime is the canonical baseline timestamp used by fixtures:
// Saturday 2024-06-15 10:30 local time, matching the scenarios exercised by
// the window tests.
func ReferenceTime() time.Time {
	return time.Date(2024, time.June, 15, 10, 30, 0, 0, time.Local)
}

// Clock is a controllable time source.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock initialised to start, or to ReferenceTime when
// start is the zero value.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set updates the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}
