package entity

import (
	"time"

	"github.com/vitalcycle/backend/pkg/enum"
)

type MedalCriterionType string

var (
	PointsAndLevelCriterion = enum.New(MedalCriterionType("points_and_level"))
	StreakCriterion         = enum.New(MedalCriterionType("streak"))
	FullWeekCriterion       = enum.New(MedalCriterionType("full_week"))
	PerfectDaysCriterion    = enum.New(MedalCriterionType("perfect_days"))
)

// MedalCriterion is the structured eligibility rule of a medal. Data holds the
// parameters of the criterion type, e.g. {"days": 7} for a streak.
type MedalCriterion struct {
	Type MedalCriterionType `json:"type"`
	Data Map                `json:"data"`
}

type Medal struct {
	Base

	Name        string `gorm:"unique;not null"`
	Description string
	IconURL     string

	RequiredPoints      int
	RequiredLevel       Level
	RequiredCycleNumber int

	Criterion MedalCriterion `gorm:"embedded;embeddedPrefix:criterion_"`
	IsActive  bool
}

// AwardedMedal is created at most once per (user, medal) and never modified
// afterwards, except for the notification flag.
type AwardedMedal struct {
	UserID  string `gorm:"primaryKey"`
	MedalID string `gorm:"primaryKey"`
	Medal   Medal  `gorm:"foreignKey:MedalID"`

	CycleEarnedID    string
	PointsWhenEarned int
	LevelWhenEarned  Level
	EarnedAt         time.Time
	WasNotified      bool
}
