package lifecycle

import (
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/dateutil"
)

// DaysElapsed returns the day of the cycle that now falls on. The start day is
// day 1 and the result is clamped to [1, CycleLengthDays], so an unrenewed
// cycle never reports more than its length.
func DaysElapsed(cycle *entity.Cycle, now time.Time, loc *time.Location) int {
	elapsed := dateutil.DaysBetween(dateutil.DateOf(cycle.StartAt, loc), dateutil.DateOf(now, loc)) + 1
	if elapsed < 1 {
		return 1
	}

	if elapsed > entity.CycleLengthDays {
		return entity.CycleLengthDays
	}

	return elapsed
}

func DaysRemaining(cycle *entity.Cycle, now time.Time, loc *time.Location) int {
	return entity.CycleLengthDays - DaysElapsed(cycle, now, loc)
}
