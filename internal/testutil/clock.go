package testutil

import "time"

// Clock provides a deterministic "today" for date-stamped shed operations.
type Clock struct {
	current time.Time
}

// NewClock returns a clock pinned to the given date. The date is truncated
// to midnight UTC so it compares equal to parsed ISO dates.
func NewClock(day time.Time) *Clock {
	return &Clock{current: truncate(day)}
}

// Today returns the clock's current date.
func (c *Clock) Today() time.Time {
	return c.current
}

// AdvanceDays moves the clock forward by n days.
func (c *Clock) AdvanceDays(n int) {
	c.current = c.current.AddDate(0, 0, n)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
