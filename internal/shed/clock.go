package shed

import "time"

// Clock supplies the current date. Date-stamping operations take a Clock
// so tests can pin "today".
type Clock interface {
	Today() time.Time
}

// SystemClock reports the real calendar date.
type SystemClock struct{}

// Today returns the current local date, truncated to midnight UTC so it
// compares equal to dates parsed from note files.
func (SystemClock) Today() time.Time {
	now := time.Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
