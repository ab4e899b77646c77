package clock

import "time"

// Clock reports the current instant.  Booking rules read it through Today,
// so the location of the returned time decides which calendar day it is.
type Clock interface {
	Now() time.Time
}

type campusClock struct {
	loc *time.Location
}

// NewSystem returns the wall clock expressed in the campus time zone.  A nil
// location means UTC.
func NewSystem(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return campusClock{loc: loc}
}

func (c campusClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock frozen at t.  t keeps its location, so a fixed
// clock also fixes the campus time zone.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Today is the clock's calendar day, taken in the clock's own location and
// returned as midnight UTC to match dates parsed from requests.
func Today(c Clock) time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
