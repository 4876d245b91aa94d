package model

import (
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/dateutil"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertCycle(cycle *entity.Cycle) Cycle {
	if cycle == nil {
		return Cycle{}
	}

	result := Cycle{
		ID:               cycle.ID,
		UserID:           cycle.UserID,
		CycleNumber:      cycle.CycleNumber,
		StartAt:          cycle.StartAt.Format(DefaultTimeLayout),
		EndAt:            cycle.EndAt.Format(DefaultTimeLayout),
		Status:           string(cycle.Status),
		OnboardingScores: cycle.OnboardingScores,
		Phenotype:        cycle.Phenotype.String,
		ProgramID:        cycle.ProgramID.String,
	}

	if cycle.OnboardingCompletedAt.Valid {
		result.OnboardingCompletedAt = cycle.OnboardingCompletedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

// ConvertOptionalCycle keeps a missing cycle as nil.
func ConvertOptionalCycle(cycle *entity.Cycle) *Cycle {
	if cycle == nil {
		return nil
	}

	result := ConvertCycle(cycle)
	return &result
}

func ConvertDailyPoints(points *entity.DailyPoints) DailyPoints {
	if points == nil {
		return DailyPoints{}
	}

	return DailyPoints{
		UserID:               points.UserID,
		Date:                 dateutil.FormatDate(time.Time(points.Date)),
		CycleID:              points.CycleID,
		HabitPoints:          points.HabitPoints,
		BonusCompletion:      points.BonusCompletion,
		BonusStreak:          points.BonusStreak,
		BonusPromotedHabit:   points.BonusPromotedHabit,
		TotalPoints:          points.TotalPoints,
		HabitsCompletedCount: points.HabitsCompletedCount,
		HabitsTotalCount:     points.HabitsTotalCount,
		StreakOnDate:         points.StreakOnDate,
	}
}

func ConvertUserLevel(level *entity.UserLevel) UserLevel {
	if level == nil {
		return UserLevel{}
	}

	result := UserLevel{
		UserID:             level.UserID,
		CurrentCycleID:     level.CurrentCycleID.String,
		CurrentLevel:       string(level.CurrentLevel),
		CurrentCyclePoints: level.CurrentCyclePoints,
		TotalPointsAllTime: level.TotalPointsAllTime,
		CurrentStreak:      level.CurrentStreak,
		LongestStreak:      level.LongestStreak,
	}

	if level.LastActivityDate.Valid {
		result.LastActivityDate = dateutil.FormatDate(level.LastActivityDate.Time)
	}

	return result
}

func ConvertMedal(medal *entity.Medal, statement string) Medal {
	if medal == nil {
		return Medal{}
	}

	return Medal{
		ID:                  medal.ID,
		Name:                medal.Name,
		Description:         medal.Description,
		IconURL:             medal.IconURL,
		RequiredPoints:      medal.RequiredPoints,
		RequiredLevel:       string(medal.RequiredLevel),
		RequiredCycleNumber: medal.RequiredCycleNumber,
		Criterion: MedalCriterion{
			Type: string(medal.Criterion.Type),
			Data: medal.Criterion.Data,
		},
		Statement: statement,
		IsActive:  medal.IsActive,
	}
}

func ConvertAwardedMedal(awarded *entity.AwardedMedal) AwardedMedal {
	if awarded == nil {
		return AwardedMedal{}
	}

	return AwardedMedal{
		Medal:            ConvertMedal(&awarded.Medal, ""),
		CycleEarnedID:    awarded.CycleEarnedID,
		PointsWhenEarned: awarded.PointsWhenEarned,
		LevelWhenEarned:  string(awarded.LevelWhenEarned),
		EarnedAt:         awarded.EarnedAt.Format(DefaultTimeLayout),
		WasNotified:      awarded.WasNotified,
	}
}

func ConvertAwardedMedals(awarded []entity.AwardedMedal) []AwardedMedal {
	result := []AwardedMedal{}
	for i := range awarded {
		result = append(result, ConvertAwardedMedal(&awarded[i]))
	}

	return result
}
