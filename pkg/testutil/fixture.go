package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"gorm.io/datatypes"
)

var (
	MedalFirstSteps = entity.Medal{
		Base:                entity.Base{ID: "medal-first-steps"},
		Name:                "Primeros pasos",
		Description:         "Acumula 100 puntos en tu ciclo",
		RequiredPoints:      100,
		RequiredLevel:       entity.LevelNovato,
		RequiredCycleNumber: 1,
		Criterion:           entity.MedalCriterion{Type: entity.PointsAndLevelCriterion},
		IsActive:            true,
	}

	MedalStreak3 = entity.Medal{
		Base:                entity.Base{ID: "medal-streak-3"},
		Name:                "Racha de 3 días",
		RequiredLevel:       entity.LevelNovato,
		RequiredCycleNumber: 1,
		Criterion: entity.MedalCriterion{
			Type: entity.StreakCriterion,
			Data: entity.Map{"days": 3},
		},
		IsActive: true,
	}

	MedalFullWeek = entity.Medal{
		Base:                entity.Base{ID: "medal-full-week"},
		Name:                "Semana completa",
		RequiredLevel:       entity.LevelNovato,
		RequiredCycleNumber: 1,
		Criterion:           entity.MedalCriterion{Type: entity.FullWeekCriterion},
		IsActive:            true,
	}

	MedalPerfectDays2 = entity.Medal{
		Base:                entity.Base{ID: "medal-perfect-days-2"},
		Name:                "Dos días perfectos",
		RequiredLevel:       entity.LevelNovato,
		RequiredCycleNumber: 1,
		Criterion: entity.MedalCriterion{
			Type: entity.PerfectDaysCriterion,
			Data: entity.Map{"days": 2},
		},
		IsActive: true,
	}

	MedalBronce = entity.Medal{
		Base:                entity.Base{ID: "medal-bronce"},
		Name:                "Nivel bronce",
		RequiredPoints:      0,
		RequiredLevel:       entity.LevelBronce,
		RequiredCycleNumber: 1,
		Criterion:           entity.MedalCriterion{Type: entity.PointsAndLevelCriterion},
		IsActive:            true,
	}

	MedalSecondCycle = entity.Medal{
		Base:                entity.Base{ID: "medal-second-cycle"},
		Name:                "Segundo ciclo",
		RequiredLevel:       entity.LevelNovato,
		RequiredCycleNumber: 2,
		Criterion:           entity.MedalCriterion{Type: entity.PointsAndLevelCriterion},
		IsActive:            true,
	}

	MedalInactive = entity.Medal{
		Base:                entity.Base{ID: "medal-inactive"},
		Name:                "Retirada",
		RequiredLevel:       entity.LevelNovato,
		RequiredCycleNumber: 1,
		Criterion:           entity.MedalCriterion{Type: entity.PointsAndLevelCriterion},
		IsActive:            false,
	}

	Medals = []entity.Medal{
		MedalFirstSteps,
		MedalStreak3,
		MedalFullWeek,
		MedalPerfectDays2,
		MedalBronce,
		MedalSecondCycle,
		MedalInactive,
	}
)

// CreateFixtureDb inserts the medal catalog fixtures.
func CreateFixtureDb(ctx context.Context) {
	medalRepo := repository.NewMedalRepository()
	for _, m := range Medals {
		medal := m
		if err := medalRepo.Upsert(ctx, &medal); err != nil {
			panic(err)
		}
	}
}

// LogDay stores one habit completion per level on the given date. The first
// habit is the promoted one when promoted is true.
func LogDay(ctx context.Context, userID string, date time.Time, promoted bool, levels ...int) {
	habitRepo := repository.NewHabitCompletionRepository()
	for i, level := range levels {
		err := habitRepo.Upsert(ctx, &entity.HabitCompletion{
			UserID:          userID,
			Date:            datatypes.Date(dateutil.Canonical(date)),
			HabitID:         HabitID(i),
			CompletionLevel: level,
			IsPromoted:      promoted && i == 0,
		})
		if err != nil {
			panic(err)
		}
	}
}

func HabitID(i int) string {
	return fmt.Sprintf("habit-%d", i)
}

// CreateCycle inserts a cycle directly, bypassing the lifecycle rules.
func CreateCycle(
	ctx context.Context, userID string, number int, start time.Time, status entity.CycleStatus,
) *entity.Cycle {
	cycle := &entity.Cycle{
		Base:        entity.Base{ID: fmt.Sprintf("%s-cycle-%d", userID, number)},
		UserID:      userID,
		CycleNumber: number,
		StartAt:     start.UTC(),
		EndAt:       start.UTC().AddDate(0, 0, entity.CycleLengthDays),
		Status:      status,
	}

	if err := repository.NewCycleRepository().Create(ctx, cycle); err != nil {
		panic(err)
	}

	return cycle
}
