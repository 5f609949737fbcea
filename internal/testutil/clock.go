package testutil

import (
	"sync"
	"time"
)

// Clock is a controllable time source for tests. It satisfies
// services.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock set to now, or to 2025-01-01 09:00 UTC when no
// time is given. The default sits mid-morning so that short advances never
// cross a calendar day by accident.
func NewClock(now ...time.Time) *Clock {
	t := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	if len(now) > 0 {
		t = now[0]
	}
	return &Clock{now: t}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Today returns the current UTC calendar day as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().UTC().Format("2006-01-02")
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceDays moves the clock forward by n calendar days.
func (c *Clock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

// Set overrides the clock's current time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
