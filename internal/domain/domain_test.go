package domain

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/config"
	"github.com/vitalcycle/backend/internal/domain/lifecycle"
	"github.com/vitalcycle/backend/internal/domain/medal"
	"github.com/vitalcycle/backend/internal/domain/progression"
	"github.com/vitalcycle/backend/internal/domain/scoring"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/lock"
	"github.com/vitalcycle/backend/pkg/testutil"
)

var start = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

type testDomains struct {
	ctx       context.Context
	clock     *dateutil.FixedClock
	publisher *testutil.MockPublisher

	cycle        *cycleDomain
	gamification *gamificationDomain
	medal        *medalDomain
}

func newTestDomains() *testDomains {
	ctx := testutil.MockContext()
	clock := &dateutil.FixedClock{T: start}
	publisher := &testutil.MockPublisher{}
	locker := lock.NewLocalLocker()

	cycleRepo := repository.NewCycleRepository()
	habitRepo := repository.NewHabitCompletionRepository()
	pointsRepo := repository.NewDailyPointsRepository()
	levelRepo := repository.NewUserLevelRepository()
	medalRepo := repository.NewMedalRepository()
	awardedRepo := repository.NewAwardedMedalRepository()

	thresholds, err := progression.NewThresholds(config.DefaultLevelThresholds())
	if err != nil {
		panic(err)
	}

	cycleManager := lifecycle.NewManager(cycleRepo, clock, time.UTC)
	streaks := scoring.NewStreakCalculator(habitRepo)
	calculator := scoring.NewCalculator(habitRepo, pointsRepo, streaks)
	tracker := progression.NewTracker(cycleManager, pointsRepo, levelRepo, streaks, thresholds)
	factory := medal.NewFactory(streaks, time.UTC)
	medalManager := medal.NewManager(medalRepo, awardedRepo, factory)

	return &testDomains{
		ctx:       ctx,
		clock:     clock,
		publisher: publisher,
		cycle:     NewCycleDomain(cycleManager, locker, publisher),
		gamification: NewGamificationDomain(
			habitRepo, pointsRepo, awardedRepo,
			cycleManager, calculator, tracker, medalManager,
			locker, publisher,
		),
		medal: NewMedalDomain(medalRepo, factory),
	}
}
