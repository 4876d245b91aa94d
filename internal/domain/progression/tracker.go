package progression

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vitalcycle/backend/internal/domain/lifecycle"
	"github.com/vitalcycle/backend/internal/domain/scoring"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Progress struct {
	UserLevel     *entity.UserLevel
	Cycle         *entity.Cycle
	PreviousLevel entity.Level
	LevelChanged  bool
}

// Tracker maintains the cross-cycle level state of users. Cycle points are
// always recomputed from the stored daily points of the cycle.
type Tracker struct {
	lifecycle  *lifecycle.Manager
	pointsRepo repository.DailyPointsRepository
	levelRepo  repository.UserLevelRepository
	streaks    *scoring.StreakCalculator
	thresholds []Threshold
}

func NewTracker(
	cycleManager *lifecycle.Manager,
	pointsRepo repository.DailyPointsRepository,
	levelRepo repository.UserLevelRepository,
	streaks *scoring.StreakCalculator,
	thresholds []Threshold,
) *Tracker {
	return &Tracker{
		lifecycle:  cycleManager,
		pointsRepo: pointsRepo,
		levelRepo:  levelRepo,
		streaks:    streaks,
		thresholds: thresholds,
	}
}

// GetUserLevel returns the stored level state, or the initial NOVATO state of
// a user who was never scored.
func (t *Tracker) GetUserLevel(ctx context.Context, userID string) (*entity.UserLevel, error) {
	userLevel, err := t.levelRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.UserLevel{UserID: userID, CurrentLevel: entity.LevelNovato}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user level: %v", err)
		return nil, errorx.Unknown
	}

	return userLevel, nil
}

// UpdateLevelProgress refreshes the level state of the user from the current
// cycle. Without a current cycle nothing changes. The level only moves up.
func (t *Tracker) UpdateLevelProgress(ctx context.Context, userID string) (*Progress, error) {
	userLevel, err := t.GetUserLevel(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := &Progress{UserLevel: userLevel, PreviousLevel: userLevel.CurrentLevel}

	cycle, err := t.lifecycle.GetCurrentCycle(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cycle == nil {
		return progress, nil
	}
	progress.Cycle = cycle

	cyclePoints, err := t.pointsRepo.SumByCycleID(ctx, userID, cycle.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum cycle points: %v", err)
		return nil, errorx.Unknown
	}

	totalPoints, err := t.pointsRepo.SumByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum all time points: %v", err)
		return nil, errorx.Unknown
	}

	today := t.lifecycle.Today()
	streak, err := t.streaks.StreakOnDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	if threshold, ok := ThresholdFor(t.thresholds, cycle.CycleNumber); ok {
		if cyclePoints >= threshold.Points && threshold.Level.Rank() > userLevel.CurrentLevel.Rank() {
			userLevel.CurrentLevel = threshold.Level
			progress.LevelChanged = true
		}
	} else {
		xcontext.Logger(ctx).Warnf("No level threshold for cycle %d", cycle.CycleNumber)
	}

	userLevel.CurrentCycleID = sql.NullString{Valid: true, String: cycle.ID}
	userLevel.CurrentCyclePoints = cyclePoints
	userLevel.TotalPointsAllTime = totalPoints
	userLevel.CurrentStreak = streak
	if streak > userLevel.LongestStreak {
		userLevel.LongestStreak = streak
	}
	userLevel.LastActivityDate = sql.NullTime{Valid: true, Time: today}

	if err := t.levelRepo.Upsert(ctx, userLevel); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert user level: %v", err)
		return nil, errorx.Unknown
	}

	if progress.LevelChanged {
		xcontext.Logger(ctx).Debugf("User %s levels up from %s to %s",
			userID, progress.PreviousLevel, userLevel.CurrentLevel)
	}

	return progress, nil
}
