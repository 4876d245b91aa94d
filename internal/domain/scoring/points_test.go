package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vitalcycle/backend/internal/entity"
)

func logs(promoted bool, levels ...int) []entity.HabitCompletion {
	result := []entity.HabitCompletion{}
	for i, level := range levels {
		result = append(result, entity.HabitCompletion{
			HabitID:         string(rune('a' + i)),
			CompletionLevel: level,
			IsPromoted:      promoted && i == 0,
		})
	}

	return result
}

func TestHabitPoints(t *testing.T) {
	for level, want := range []int{0, 5, 10, 15} {
		got, err := HabitPoints(level, false)
		require.NoError(t, err)
		require.Equal(t, want, got)

		got, err = HabitPoints(level, true)
		require.NoError(t, err)
		require.Equal(t, 2*want, got)
	}

	_, err := HabitPoints(4, false)
	require.Error(t, err)

	_, err = HabitPoints(-1, true)
	require.Error(t, err)
}

func TestStreakBonus(t *testing.T) {
	require.Equal(t, 0, StreakBonus(0))
	require.Equal(t, 15, StreakBonus(3))
	require.Equal(t, 50, StreakBonus(10))
	require.Equal(t, 50, StreakBonus(25))
}

func TestCalculate(t *testing.T) {
	testCases := []struct {
		name        string
		completions []entity.HabitCompletion
		streak      int
		want        Breakdown
	}{
		{
			name:        "five habits at level 3 with one promoted",
			completions: logs(true, 3, 3, 3, 3, 3),
			streak:      3,
			want: Breakdown{
				HabitPoints:          90,
				BonusCompletion:      25,
				BonusStreak:          15,
				BonusPromotedHabit:   15,
				TotalPoints:          130,
				HabitsCompletedCount: 5,
				HabitsTotalCount:     5,
				StreakOnDate:         3,
			},
		},
		{
			name:        "partial completion has no completion bonus",
			completions: logs(false, 3, 1, 2),
			streak:      0,
			want: Breakdown{
				HabitPoints:          30,
				TotalPoints:          30,
				HabitsCompletedCount: 2,
				HabitsTotalCount:     3,
			},
		},
		{
			name:        "promoted delta follows the table",
			completions: logs(true, 1),
			streak:      1,
			want: Breakdown{
				HabitPoints:        10,
				BonusStreak:        5,
				BonusPromotedHabit: 5,
				TotalPoints:        15,
				HabitsTotalCount:   1,
				StreakOnDate:       1,
			},
		},
		{
			name:        "all zero completions",
			completions: logs(false, 0, 0),
			want:        Breakdown{HabitsTotalCount: 2},
		},
		{
			name:        "no logs",
			completions: nil,
			streak:      4,
			want:        Breakdown{},
		},
		{
			name:        "long streak is capped",
			completions: logs(false, 2),
			streak:      30,
			want: Breakdown{
				HabitPoints:          10,
				BonusCompletion:      25,
				BonusStreak:          50,
				TotalPoints:          85,
				HabitsCompletedCount: 1,
				HabitsTotalCount:     1,
				StreakOnDate:         30,
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.completions, tt.streak)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			again, err := Calculate(tt.completions, tt.streak)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestCalculate_InvalidLevel(t *testing.T) {
	_, err := Calculate(logs(false, 3, 5), 0)
	require.Error(t, err)
}

func TestIsQualifyingDay(t *testing.T) {
	require.False(t, IsQualifyingDay(nil))
	require.False(t, IsQualifyingDay(logs(false, 3, 1)))
	require.True(t, IsQualifyingDay(logs(false, 2, 3)))

	require.False(t, IsPerfectDay(nil))
	require.False(t, IsPerfectDay(logs(false, 3, 2)))
	require.True(t, IsPerfectDay(logs(true, 3, 3)))
}
