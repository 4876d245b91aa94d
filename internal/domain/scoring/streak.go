package scoring

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

const (
	FullWeekDays = 7

	// streakWindowDays is how many days of logs are loaded at once while
	// walking backward. A streak rarely outlives one cycle.
	streakWindowDays = entity.CycleLengthDays + 1
)

// StreakCalculator answers questions over the raw habit log of a user. Results
// are always recomputed from the log so that retroactive edits are honored.
type StreakCalculator struct {
	habitRepo repository.HabitCompletionRepository
}

func NewStreakCalculator(habitRepo repository.HabitCompletionRepository) *StreakCalculator {
	return &StreakCalculator{habitRepo: habitRepo}
}

// StreakOnDate walks backward from date and counts the consecutive qualifying
// days, date included.
func (c *StreakCalculator) StreakOnDate(ctx context.Context, userID string, date time.Time) (int, error) {
	streak := 0
	to := dateutil.Canonical(date)
	for {
		from := dateutil.AddDays(to, -(streakWindowDays - 1))
		days, err := c.loadDays(ctx, userID, from, to)
		if err != nil {
			return 0, err
		}

		for d := to; !d.Before(from); d = dateutil.AddDays(d, -1) {
			if !IsQualifyingDay(days[d]) {
				return streak, nil
			}
			streak++
		}

		to = dateutil.AddDays(from, -1)
	}
}

// CountPerfectDays counts the perfect days in [from, to].
func (c *StreakCalculator) CountPerfectDays(ctx context.Context, userID string, from, to time.Time) (int, error) {
	days, err := c.loadDays(ctx, userID, from, to)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, completions := range days {
		if IsPerfectDay(completions) {
			count++
		}
	}

	return count, nil
}

// IsFullWeek reports whether each of the seven days ending on date qualifies.
func (c *StreakCalculator) IsFullWeek(ctx context.Context, userID string, date time.Time) (bool, error) {
	to := dateutil.Canonical(date)
	from := dateutil.AddDays(to, -(FullWeekDays - 1))
	days, err := c.loadDays(ctx, userID, from, to)
	if err != nil {
		return false, err
	}

	for d := from; !d.After(to); d = dateutil.AddDays(d, 1) {
		if !IsQualifyingDay(days[d]) {
			return false, nil
		}
	}

	return true, nil
}

func (c *StreakCalculator) loadDays(
	ctx context.Context, userID string, from, to time.Time,
) (map[time.Time][]entity.HabitCompletion, error) {
	completions, err := c.habitRepo.GetByDateRange(ctx, userID, from, to)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get habit completions of %s: %v", userID, err)
		return nil, errorx.Unknown
	}

	days := map[time.Time][]entity.HabitCompletion{}
	for _, completion := range completions {
		d := dateutil.Canonical(time.Time(completion.Date))
		days[d] = append(days[d], completion)
	}

	return days, nil
}
