package dateutil

import "time"

// Clock supplies the current time. Engines take a Clock instead of calling
// time.Now so that cycle transitions can be tested on fixed dates.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// Advance moves the clock forward by the given number of days.
func (c *FixedClock) Advance(days int) {
	c.T = c.T.AddDate(0, 0, days)
}
