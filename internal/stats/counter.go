// Package stats owns the single global order-number sequence and the
// paired total / totalToday counters. Number assignment and both
// increments happen under one lock so no two orders ever share a number
// and no increment is lost under concurrent creates.
package stats

import (
	"sync"
	"time"
)

type Counter struct {
	mu    sync.Mutex
	next  int64
	total int64
	today int64
	day   time.Time
	now   func() time.Time
}

func NewCounter() *Counter {
	return newCounter(time.Now)
}

func newCounter(now func() time.Time) *Counter {
	c := &Counter{
		next: 1,
		now:  now,
	}
	c.day = utcMidnight(now())
	return c
}

// Next atomically returns the next order number and bumps both counters.
func (c *Counter) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollDayLocked()

	n := c.next
	c.next++
	c.total++
	c.today++

	return n
}

// Totals reports the global total and the count since the last UTC midnight.
func (c *Counter) Totals() (total, today int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rollDayLocked()

	return c.total, c.today
}

func (c *Counter) rollDayLocked() {
	midnight := utcMidnight(c.now())

	if midnight.After(c.day) {
		c.day = midnight
		c.today = 0
	}
}

func utcMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
