package medal

import (
	"context"
	"fmt"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

// Points and level criterion
type pointsAndLevelCriterion struct {
	requiredPoints int
	requiredLevel  entity.Level
}

func newPointsAndLevelCriterion(medal entity.Medal) (*pointsAndLevelCriterion, error) {
	if medal.RequiredPoints < 0 {
		return nil, errorx.New(errorx.BadRequest, "Required points must not be negative")
	}

	requiredLevel := medal.RequiredLevel
	if requiredLevel == "" {
		requiredLevel = entity.LevelNovato
	}

	if requiredLevel.Rank() < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid required level %s", requiredLevel)
	}

	return &pointsAndLevelCriterion{
		requiredPoints: medal.RequiredPoints,
		requiredLevel:  requiredLevel,
	}, nil
}

func (c *pointsAndLevelCriterion) Statement() string {
	return fmt.Sprintf("Reach %d points in a cycle at level %s", c.requiredPoints, c.requiredLevel)
}

func (c *pointsAndLevelCriterion) Check(ctx context.Context, state State) (bool, error) {
	return state.UserLevel.CurrentCyclePoints >= c.requiredPoints &&
		state.UserLevel.CurrentLevel.AtLeast(c.requiredLevel), nil
}

// Streak criterion
type streakCriterion struct {
	Days int `mapstructure:"days" structs:"days"`

	factory *Factory
}

func newStreakCriterion(ctx context.Context, factory *Factory, data map[string]any) (*streakCriterion, error) {
	criterion := streakCriterion{factory: factory}
	if err := mapstructure.Decode(data, &criterion); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode streak criterion: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid streak criterion")
	}

	if criterion.Days < 1 {
		return nil, errorx.New(errorx.BadRequest, "Streak days must be positive")
	}

	return &criterion, nil
}

func (c *streakCriterion) Statement() string {
	return fmt.Sprintf("Complete every habit %d days in a row", c.Days)
}

func (c *streakCriterion) Check(ctx context.Context, state State) (bool, error) {
	streak, err := c.factory.streaks.StreakOnDate(ctx, state.UserID, state.Today)
	if err != nil {
		return false, err
	}

	return streak >= c.Days, nil
}

// Full week criterion
type fullWeekCriterion struct {
	factory *Factory
}

func newFullWeekCriterion(factory *Factory) *fullWeekCriterion {
	return &fullWeekCriterion{factory: factory}
}

func (c *fullWeekCriterion) Statement() string {
	return "Complete every habit on each of the last 7 days"
}

func (c *fullWeekCriterion) Check(ctx context.Context, state State) (bool, error) {
	return c.factory.streaks.IsFullWeek(ctx, state.UserID, state.Today)
}

// Perfect days criterion
type perfectDaysCriterion struct {
	Days int `mapstructure:"days" structs:"days"`

	factory *Factory
}

func newPerfectDaysCriterion(ctx context.Context, factory *Factory, data map[string]any) (*perfectDaysCriterion, error) {
	criterion := perfectDaysCriterion{factory: factory}
	if err := mapstructure.Decode(data, &criterion); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode perfect days criterion: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid perfect days criterion")
	}

	if criterion.Days < 1 {
		return nil, errorx.New(errorx.BadRequest, "Perfect days must be positive")
	}

	return &criterion, nil
}

func (c *perfectDaysCriterion) Statement() string {
	return fmt.Sprintf("Reach the maximum level in every habit on %d days of a cycle", c.Days)
}

// Check counts perfect days of the current cycle up to today.
func (c *perfectDaysCriterion) Check(ctx context.Context, state State) (bool, error) {
	from := dateutil.DateOf(state.Cycle.StartAt, c.factory.loc)
	count, err := c.factory.streaks.CountPerfectDays(ctx, state.UserID, from, state.Today)
	if err != nil {
		return false, err
	}

	return count >= c.Days, nil
}

// PointsAndLevel builds the criterion data of a medal which only requires its
// points and level.
func PointsAndLevel() entity.MedalCriterion {
	return entity.MedalCriterion{Type: entity.PointsAndLevelCriterion}
}

func StreakOf(days int) entity.MedalCriterion {
	return entity.MedalCriterion{
		Type: entity.StreakCriterion,
		Data: structs.Map(streakCriterion{Days: days}),
	}
}

func FullWeek() entity.MedalCriterion {
	return entity.MedalCriterion{Type: entity.FullWeekCriterion}
}

func PerfectDaysCount(days int) entity.MedalCriterion {
	return entity.MedalCriterion{
		Type: entity.PerfectDaysCriterion,
		Data: structs.Map(perfectDaysCriterion{Days: days}),
	}
}
