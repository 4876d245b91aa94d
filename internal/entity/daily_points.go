package entity

import (
	"time"

	"gorm.io/datatypes"
)

// DailyPoints is the point breakdown of one user on one calendar date.
type DailyPoints struct {
	UserID string         `gorm:"primaryKey"`
	Date   datatypes.Date `gorm:"primaryKey"`

	CycleID string `gorm:"index"`

	HabitPoints        int
	BonusCompletion    int
	BonusStreak        int
	BonusPromotedHabit int
	TotalPoints        int

	HabitsCompletedCount int
	HabitsTotalCount     int
	StreakOnDate         int

	CreatedAt time.Time
	UpdatedAt time.Time
}
