package medal

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/internal/domain/scoring"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/errorx"
)

type Factory struct {
	streaks *scoring.StreakCalculator
	loc     *time.Location
}

func NewFactory(streaks *scoring.StreakCalculator, loc *time.Location) *Factory {
	return &Factory{streaks: streaks, loc: loc}
}

// NewCriterion builds the criterion of a medal. A medal without criterion type
// uses its points and level.
func (f *Factory) NewCriterion(ctx context.Context, medal entity.Medal) (Criterion, error) {
	var criterion Criterion
	var err error
	switch medal.Criterion.Type {
	case "", entity.PointsAndLevelCriterion:
		criterion, err = newPointsAndLevelCriterion(medal)

	case entity.StreakCriterion:
		criterion, err = newStreakCriterion(ctx, f, medal.Criterion.Data)

	case entity.FullWeekCriterion:
		criterion = newFullWeekCriterion(f)

	case entity.PerfectDaysCriterion:
		criterion, err = newPerfectDaysCriterion(ctx, f, medal.Criterion.Data)

	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid criterion type %s", medal.Criterion.Type)
	}

	if err != nil {
		return nil, err
	}

	return criterion, nil
}
