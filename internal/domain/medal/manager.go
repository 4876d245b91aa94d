package medal

import (
	"context"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type Manager struct {
	medalRepo   repository.MedalRepository
	awardedRepo repository.AwardedMedalRepository
	factory     *Factory
}

func NewManager(
	medalRepo repository.MedalRepository,
	awardedRepo repository.AwardedMedalRepository,
	factory *Factory,
) *Manager {
	return &Manager{
		medalRepo:   medalRepo,
		awardedRepo: awardedRepo,
		factory:     factory,
	}
}

func (m *Manager) Factory() *Factory {
	return m.factory
}

// CheckNewMedals awards every active medal the user is now eligible for and
// returns the new awards. A medal is awarded at most once per user, a
// concurrent evaluation which loses the insert race simply skips it.
func (m *Manager) CheckNewMedals(ctx context.Context, state State) ([]entity.AwardedMedal, error) {
	if state.Cycle == nil || state.UserLevel == nil {
		return nil, nil
	}

	medals, err := m.medalRepo.GetActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active medals: %v", err)
		return nil, errorx.Unknown
	}

	awardedIDs, err := m.awardedRepo.GetMedalIDs(ctx, state.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get awarded medals: %v", err)
		return nil, errorx.Unknown
	}

	newMedals := []entity.AwardedMedal{}
	for _, medal := range medals {
		if slices.Contains(awardedIDs, medal.ID) {
			continue
		}

		if medal.RequiredCycleNumber > state.Cycle.CycleNumber {
			continue
		}

		criterion, err := m.factory.NewCriterion(ctx, medal)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Skip medal %s with invalid criterion: %v", medal.Name, err)
			continue
		}

		ok, err := criterion.Check(ctx, state)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		awarded := entity.AwardedMedal{
			UserID:           state.UserID,
			MedalID:          medal.ID,
			CycleEarnedID:    state.Cycle.ID,
			PointsWhenEarned: state.UserLevel.CurrentCyclePoints,
			LevelWhenEarned:  state.UserLevel.CurrentLevel,
			EarnedAt:         state.Now,
		}

		created, err := m.awardedRepo.Create(ctx, &awarded)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award medal %s: %v", medal.Name, err)
			return nil, errorx.Unknown
		}

		if !created {
			xcontext.Logger(ctx).Debugf("Medal %s was already awarded to %s", medal.Name, state.UserID)
			continue
		}

		awarded.Medal = medal
		newMedals = append(newMedals, awarded)
	}

	return newMedals, nil
}
