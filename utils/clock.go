package utils

import (
	"time"
)

// Clock supplies "now" and "today". Services ask it at call time so date
// boundaries are evaluated when the operation runs.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock reads the wall clock; Today is the calendar date in Location.
type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(timezone string) (*SystemClock, error) {
	if timezone == "" {
		return &SystemClock{Location: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &SystemClock{Location: loc}, nil
}

func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (c *SystemClock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(time.Now().In(loc))
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At       time.Time
	Location *time.Location
}

func (c FixedClock) Now() time.Time {
	return c.At.UTC()
}

func (c FixedClock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(c.At.In(loc))
}
