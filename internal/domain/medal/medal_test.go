package medal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vitalcycle/backend/internal/domain/scoring"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/testutil"
	"golang.org/x/exp/slices"
)

var start = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func newTestManager() *Manager {
	streaks := scoring.NewStreakCalculator(repository.NewHabitCompletionRepository())
	return NewManager(
		repository.NewMedalRepository(),
		repository.NewAwardedMedalRepository(),
		NewFactory(streaks, time.UTC),
	)
}

func medalIDs(awarded []entity.AwardedMedal) []string {
	ids := []string{}
	for _, a := range awarded {
		ids = append(ids, a.MedalID)
	}
	slices.Sort(ids)
	return ids
}

func TestFactory_NewCriterion(t *testing.T) {
	ctx := testutil.MockContext()
	factory := newTestManager().Factory()

	testCases := []struct {
		name      string
		criterion entity.MedalCriterion
		wantErr   bool
		statement string
	}{
		{name: "default", criterion: entity.MedalCriterion{}, statement: "Reach 0 points in a cycle at level NOVATO"},
		{name: "points and level", criterion: PointsAndLevel(), statement: "Reach 0 points in a cycle at level NOVATO"},
		{name: "streak", criterion: StreakOf(3), statement: "Complete every habit 3 days in a row"},
		{name: "full week", criterion: FullWeek(), statement: "Complete every habit on each of the last 7 days"},
		{name: "perfect days", criterion: PerfectDaysCount(5), statement: "Reach the maximum level in every habit on 5 days of a cycle"},
		{name: "streak from json", criterion: entity.MedalCriterion{Type: entity.StreakCriterion, Data: entity.Map{"days": float64(7)}}, statement: "Complete every habit 7 days in a row"},
		{name: "zero streak", criterion: StreakOf(0), wantErr: true},
		{name: "streak without days", criterion: entity.MedalCriterion{Type: entity.StreakCriterion}, wantErr: true},
		{name: "invalid days", criterion: entity.MedalCriterion{Type: entity.PerfectDaysCriterion, Data: entity.Map{"days": "many"}}, wantErr: true},
		{name: "unknown type", criterion: entity.MedalCriterion{Type: "lucky"}, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			criterion, err := factory.NewCriterion(ctx, entity.Medal{Criterion: tt.criterion})
			if tt.wantErr {
				require.True(t, errorx.IsCode(err, errorx.BadRequest))
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.statement, criterion.Statement())
		})
	}

	_, err := factory.NewCriterion(ctx, entity.Medal{RequiredLevel: "DIAMANTE"})
	require.Error(t, err)
}

func TestCriterionData(t *testing.T) {
	require.Equal(t, entity.Map{"days": 3}, StreakOf(3).Data)
	require.Equal(t, entity.PerfectDaysCriterion, PerfectDaysCount(2).Type)
	require.Nil(t, FullWeek().Data)
}

func TestManager_CheckNewMedals_PointsAndLevel(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	manager := newTestManager()

	cycle := testutil.CreateCycle(ctx, "user1", 1, start, entity.CycleActive)
	state := State{
		UserID:    "user1",
		Cycle:     cycle,
		UserLevel: &entity.UserLevel{UserID: "user1", CurrentLevel: entity.LevelNovato, CurrentCyclePoints: 99},
		Now:       start,
		Today:     dateutil.Canonical(start),
	}

	awarded, err := manager.CheckNewMedals(ctx, state)
	require.NoError(t, err)
	require.Empty(t, awarded)

	state.UserLevel.CurrentCyclePoints = 100
	awarded, err = manager.CheckNewMedals(ctx, state)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.MedalFirstSteps.ID}, medalIDs(awarded))
	require.Equal(t, 100, awarded[0].PointsWhenEarned)
	require.Equal(t, cycle.ID, awarded[0].CycleEarnedID)
	require.Equal(t, testutil.MedalFirstSteps.Name, awarded[0].Medal.Name)

	// Already awarded medals are not returned again.
	awarded, err = manager.CheckNewMedals(ctx, state)
	require.NoError(t, err)
	require.Empty(t, awarded)

	state.UserLevel.CurrentLevel = entity.LevelBronce
	awarded, err = manager.CheckNewMedals(ctx, state)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.MedalBronce.ID}, medalIDs(awarded))
	require.Equal(t, entity.LevelBronce, awarded[0].LevelWhenEarned)

	// The second cycle medal needs the second cycle.
	second := testutil.CreateCycle(ctx, "user1", 2, start.AddDate(0, 0, 30), entity.CycleActive)
	state.Cycle = second
	awarded, err = manager.CheckNewMedals(ctx, state)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.MedalSecondCycle.ID}, medalIDs(awarded))
}

func TestManager_CheckNewMedals_SpecialCriteria(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	manager := newTestManager()

	cycle := testutil.CreateCycle(ctx, "user1", 1, start, entity.CycleActive)
	for i := 0; i < 7; i++ {
		level := 2
		if i >= 5 {
			level = 3
		}
		testutil.LogDay(ctx, "user1", dateutil.AddDays(start, i), false, level, level)
	}

	state := func(day int) State {
		return State{
			UserID:    "user1",
			Cycle:     cycle,
			UserLevel: &entity.UserLevel{UserID: "user1", CurrentLevel: entity.LevelNovato},
			Now:       start.AddDate(0, 0, day),
			Today:     dateutil.AddDays(start, day),
		}
	}

	// Day 2 has a 3-day streak.
	awarded, err := manager.CheckNewMedals(ctx, state(2))
	require.NoError(t, err)
	require.Equal(t, []string{testutil.MedalStreak3.ID}, medalIDs(awarded))

	// Day 6 completes the week and the second perfect day.
	awarded, err = manager.CheckNewMedals(ctx, state(6))
	require.NoError(t, err)
	require.Equal(t, []string{testutil.MedalFullWeek.ID, testutil.MedalPerfectDays2.ID}, medalIDs(awarded))

	all, err := repository.NewAwardedMedalRepository().GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestManager_CheckNewMedals_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	manager := newTestManager()

	cycle := testutil.CreateCycle(ctx, "user1", 1, start, entity.CycleActive)

	var wg sync.WaitGroup
	results := make([][]entity.AwardedMedal, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			awarded, err := manager.CheckNewMedals(ctx, State{
				UserID:    "user1",
				Cycle:     cycle,
				UserLevel: &entity.UserLevel{UserID: "user1", CurrentLevel: entity.LevelBronce, CurrentCyclePoints: 500},
				Now:       start,
				Today:     dateutil.Canonical(start),
			})
			if err != nil {
				t.Error(err)
			}
			results[i] = awarded
		}(i)
	}
	wg.Wait()

	total := 0
	for _, r := range results {
		total += len(r)
	}
	require.Equal(t, 2, total)

	all, err := repository.NewAwardedMedalRepository().GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, []string{testutil.MedalBronce.ID, testutil.MedalFirstSteps.ID}, medalIDs(all))
}

func TestManager_CheckNewMedals_NoCycle(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	awarded, err := newTestManager().CheckNewMedals(ctx, State{UserID: "user1"})
	require.NoError(t, err)
	require.Empty(t, awarded)
}
