package scoring

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/datatypes"
)

// Calculator turns the habit log of one (user, date) into its DailyPoints
// record. Processing the same logs again always yields the same record.
type Calculator struct {
	habitRepo  repository.HabitCompletionRepository
	pointsRepo repository.DailyPointsRepository
	streaks    *StreakCalculator
}

func NewCalculator(
	habitRepo repository.HabitCompletionRepository,
	pointsRepo repository.DailyPointsRepository,
	streaks *StreakCalculator,
) *Calculator {
	return &Calculator{
		habitRepo:  habitRepo,
		pointsRepo: pointsRepo,
		streaks:    streaks,
	}
}

// Process computes and stores the points of date, attributed to cycleID. A
// date without logs has no record, any stale one is removed and an all-zero
// record is returned without being stored.
func (c *Calculator) Process(
	ctx context.Context, userID, cycleID string, date time.Time,
) (*entity.DailyPoints, error) {
	date = dateutil.Canonical(date)
	record := &entity.DailyPoints{
		UserID:  userID,
		Date:    datatypes.Date(date),
		CycleID: cycleID,
	}

	completions, err := c.habitRepo.GetByDate(ctx, userID, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get habit completions: %v", err)
		return nil, errorx.Unknown
	}

	if len(completions) == 0 {
		if err := c.pointsRepo.Delete(ctx, userID, date); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete stale daily points: %v", err)
			return nil, errorx.Unknown
		}

		return record, nil
	}

	streak, err := c.streaks.StreakOnDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	breakdown, err := Calculate(completions, streak)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot calculate points of %s on %s: %v",
			userID, dateutil.FormatDate(date), err)
		return nil, errorx.New(errorx.Degraded, "Cannot compute the points of this day")
	}

	record.HabitPoints = breakdown.HabitPoints
	record.BonusCompletion = breakdown.BonusCompletion
	record.BonusStreak = breakdown.BonusStreak
	record.BonusPromotedHabit = breakdown.BonusPromotedHabit
	record.TotalPoints = breakdown.TotalPoints
	record.HabitsCompletedCount = breakdown.HabitsCompletedCount
	record.HabitsTotalCount = breakdown.HabitsTotalCount
	record.StreakOnDate = breakdown.StreakOnDate

	if err := c.pointsRepo.Upsert(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert daily points: %v", err)
		return nil, errorx.Unknown
	}

	return record, nil
}
