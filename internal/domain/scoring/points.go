package scoring

import (
	"fmt"

	"github.com/vitalcycle/backend/internal/entity"
)

const (
	CompletionBonus   = 25
	StreakBonusPerDay = 5
	MaxStreakBonus    = 50
)

var (
	normalPoints   = [entity.MaxCompletionLevel + 1]int{0, 5, 10, 15}
	promotedPoints = [entity.MaxCompletionLevel + 1]int{0, 10, 20, 30}
)

// HabitPoints returns the points of one habit log. A promoted habit uses the
// promoted table, which is exactly double the normal one.
func HabitPoints(level int, promoted bool) (int, error) {
	if level < entity.MinCompletionLevel || level > entity.MaxCompletionLevel {
		return 0, fmt.Errorf("invalid completion level %d", level)
	}

	if promoted {
		return promotedPoints[level], nil
	}

	return normalPoints[level], nil
}

func StreakBonus(streak int) int {
	bonus := streak * StreakBonusPerDay
	if bonus > MaxStreakBonus {
		return MaxStreakBonus
	}

	return bonus
}

// Breakdown is the point breakdown of one day.
//
// BonusPromotedHabit is the excess of promoted habits over the normal table.
// It is already part of HabitPoints and is reported separately only for
// transparency, so TotalPoints is HabitPoints + BonusCompletion + BonusStreak.
type Breakdown struct {
	HabitPoints        int
	BonusCompletion    int
	BonusStreak        int
	BonusPromotedHabit int
	TotalPoints        int

	HabitsCompletedCount int
	HabitsTotalCount     int
	StreakOnDate         int
}

// Calculate converts the habit logs of one day into points. streak is the
// streak of that same day.
func Calculate(completions []entity.HabitCompletion, streak int) (Breakdown, error) {
	b := Breakdown{HabitsTotalCount: len(completions)}
	if len(completions) == 0 {
		return b, nil
	}

	for _, c := range completions {
		points, err := HabitPoints(c.CompletionLevel, c.IsPromoted)
		if err != nil {
			return Breakdown{}, fmt.Errorf("habit %s: %w", c.HabitID, err)
		}

		b.HabitPoints += points
		if c.IsPromoted {
			b.BonusPromotedHabit += points - normalPoints[c.CompletionLevel]
		}

		if c.CompletionLevel >= entity.CompletedLevel {
			b.HabitsCompletedCount++
		}
	}

	if b.HabitsCompletedCount == b.HabitsTotalCount {
		b.BonusCompletion = CompletionBonus
	}

	b.StreakOnDate = streak
	b.BonusStreak = StreakBonus(streak)
	b.TotalPoints = b.HabitPoints + b.BonusCompletion + b.BonusStreak

	b.mustBeConsistent()
	return b, nil
}

func (b Breakdown) mustBeConsistent() {
	if b.HabitPoints < 0 || b.BonusCompletion < 0 || b.BonusStreak < 0 || b.BonusPromotedHabit < 0 {
		panic(fmt.Sprintf("negative points in breakdown %+v", b))
	}

	if b.TotalPoints != b.HabitPoints+b.BonusCompletion+b.BonusStreak {
		panic(fmt.Sprintf("total points do not match the components in breakdown %+v", b))
	}

	if b.BonusPromotedHabit > b.HabitPoints {
		panic(fmt.Sprintf("promoted bonus exceeds habit points in breakdown %+v", b))
	}
}

// IsQualifyingDay reports whether a day counts toward a streak: it has at
// least one log and every logged habit is completed.
func IsQualifyingDay(completions []entity.HabitCompletion) bool {
	return allAtLeast(completions, entity.CompletedLevel)
}

// IsPerfectDay reports whether every habit logged that day reached the maximum
// completion level.
func IsPerfectDay(completions []entity.HabitCompletion) bool {
	return allAtLeast(completions, entity.MaxCompletionLevel)
}

func allAtLeast(completions []entity.HabitCompletion, level int) bool {
	if len(completions) == 0 {
		return false
	}

	for _, c := range completions {
		if c.CompletionLevel < level {
			return false
		}
	}

	return true
}
