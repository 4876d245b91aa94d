package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/testutil"
)

func newTestCalculator() (*Calculator, repository.DailyPointsRepository) {
	habitRepo := repository.NewHabitCompletionRepository()
	pointsRepo := repository.NewDailyPointsRepository()
	return NewCalculator(habitRepo, pointsRepo, NewStreakCalculator(habitRepo)), pointsRepo
}

func TestCalculator_Process(t *testing.T) {
	ctx := testutil.MockContext()
	calculator, pointsRepo := newTestCalculator()

	testutil.LogDay(ctx, "user1", day1, false, 2, 2)
	testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, 1), false, 2, 2)
	testutil.LogDay(ctx, "user1", day1.AddDate(0, 0, 2), true, 3, 3, 3, 3, 3)

	record, err := calculator.Process(ctx, "user1", "cycle1", day1.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Equal(t, 130, record.TotalPoints)
	require.Equal(t, 3, record.StreakOnDate)

	stored, err := pointsRepo.Get(ctx, "user1", day1.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Equal(t, "cycle1", stored.CycleID)
	require.Equal(t, 90, stored.HabitPoints)
	require.Equal(t, 15, stored.BonusPromotedHabit)

	// Reprocessing yields the same record.
	again, err := calculator.Process(ctx, "user1", "cycle1", day1.AddDate(0, 0, 2))
	require.NoError(t, err)
	storedAgain, err := pointsRepo.Get(ctx, "user1", day1.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Equal(t, record.TotalPoints, again.TotalPoints)
	require.Equal(t, stored.TotalPoints, storedAgain.TotalPoints)
	require.Equal(t, stored.StreakOnDate, storedAgain.StreakOnDate)
}

func TestCalculator_Process_NoLogs(t *testing.T) {
	ctx := testutil.MockContext()
	calculator, pointsRepo := newTestCalculator()

	record, err := calculator.Process(ctx, "user1", "cycle1", day1)
	require.NoError(t, err)
	require.Equal(t, 0, record.TotalPoints)
	require.Equal(t, 0, record.HabitsTotalCount)

	_, err = pointsRepo.Get(ctx, "user1", day1)
	require.Error(t, err)
}

func TestCalculator_Process_InvalidLevel(t *testing.T) {
	ctx := testutil.MockContext()
	calculator, _ := newTestCalculator()

	testutil.LogDay(ctx, "user1", day1, false, 7)

	_, err := calculator.Process(ctx, "user1", "cycle1", day1)
	require.True(t, errorx.IsCode(err, errorx.Degraded))
}
