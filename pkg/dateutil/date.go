package dateutil

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

// DateOf returns the calendar date of t as observed in loc. The result is
// midnight UTC of that date, which is the canonical form of every date stored
// or compared by the engine.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the canonical date of clock's now in loc.
func Today(clock Clock, loc *time.Location) time.Time {
	return DateOf(clock.Now(), loc)
}

// Canonical normalizes a date whose year, month and day are already meaningful
// (for example a date read back from the database).
func Canonical(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from one canonical date to
// another. It is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(Canonical(to).Sub(Canonical(from)) / day)
}

func AddDays(date time.Time, n int) time.Time {
	return Canonical(date).AddDate(0, 0, n)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}

	return t, nil
}

func FormatDate(t time.Time) string {
	return Canonical(t).Format(DateLayout)
}

// NextAt returns the first instant strictly after now at which the wall clock
// of loc shows hour:00.
func NextAt(now time.Time, hour int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(now) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}

	return next
}
