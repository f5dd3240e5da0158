// Package clock provides the single time source for the service. All
// scheduling math (booking cutoffs, check-in deadlines, usage expiry) runs
// through one Clock in one fixed timezone so the request path and the
// background sweeper can never disagree about "now".
package clock

import "time"

// DateLayout is the calendar-date format used for reservation dates.
const DateLayout = "2006-01-02"

// Clock supplies the current timestamp in the service timezone.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a Clock reading the wall clock in the given timezone.
func NewSystem(loc *time.Location) Clock {
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today formats the clock's current date as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsAfterHour reports whether the clock has passed the given local hour
// (minute zero) today.
func IsAfterHour(c Clock, hour int) bool {
	now := c.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	return now.After(cutoff)
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Time time.Time
}

func (f *Fixed) Now() time.Time {
	return f.Time
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.Time = f.Time.Add(d)
}
