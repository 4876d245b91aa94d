package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/testutil"
)

var day1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestStreakCalculator_StreakOnDate(t *testing.T) {
	ctx := testutil.MockContext()
	calculator := NewStreakCalculator(repository.NewHabitCompletionRepository())

	testutil.LogDay(ctx, "user1", day1, false, 3, 2)
	testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, 1), false, 2)
	testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, 2), true, 3, 3)
	testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, 3), false, 3, 1)
	testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, 4), false, 2)

	testCases := []struct {
		date time.Time
		want int
	}{
		{date: day1.AddDate(0, 0, -1), want: 0},
		{date: day1, want: 1},
		{date: day1.AddDate(0, 0, 2), want: 3},
		{date: day1.AddDate(0, 0, 3), want: 0},
		{date: day1.AddDate(0, 0, 4), want: 1},
		{date: day1.AddDate(0, 0, 5), want: 0},
	}

	for _, tt := range testCases {
		got, err := calculator.StreakOnDate(ctx, "user1", tt.date)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, tt.date)
	}

	// Another user does not share logs.
	got, err := calculator.StreakOnDate(ctx, "user2", day1)
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

func TestStreakCalculator_StreakLongerThanWindow(t *testing.T) {
	ctx := testutil.MockContext()
	calculator := NewStreakCalculator(repository.NewHabitCompletionRepository())

	for i := 0; i < 40; i++ {
		testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, i), false, 2)
	}

	got, err := calculator.StreakOnDate(ctx, "user1", day1.AddDate(0, 0, 39))
	require.NoError(t, err)
	require.Equal(t, 40, got)
}

func TestStreakCalculator_RetroactiveEdit(t *testing.T) {
	ctx := testutil.MockContext()
	calculator := NewStreakCalculator(repository.NewHabitCompletionRepository())

	testutil.LogDay(ctx, "user1", day1, false, 2)
	testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, 1), false, 2)

	got, err := calculator.StreakOnDate(ctx, "user1", day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 2, got)

	testutil.LogDay(ctx, "user1", day1, false, 1)

	got, err = calculator.StreakOnDate(ctx, "user1", day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestStreakCalculator_PerfectDaysAndFullWeek(t *testing.T) {
	ctx := testutil.MockContext()
	calculator := NewStreakCalculator(repository.NewHabitCompletionRepository())

	for i := 0; i < 7; i++ {
		level := 2
		if i%3 == 0 {
			level = 3
		}
		testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, i), false, level, level)
	}

	perfect, err := calculator.CountPerfectDays(ctx, "user1", day1, day1.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Equal(t, 3, perfect)

	perfect, err = calculator.CountPerfectDays(ctx, "user1", day1.AddDate(0, 0, 1), day1.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Equal(t, 1, perfect)

	full, err := calculator.IsFullWeek(ctx, "user1", day1.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.True(t, full)

	full, err = calculator.IsFullWeek(ctx, "user1", day1.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.False(t, full)

	full, err = calculator.IsFullWeek(ctx, "user1", day1.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.False(t, full)
}
