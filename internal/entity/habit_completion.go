package entity

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MinCompletionLevel = 0
	MaxCompletionLevel = 3

	// CompletedLevel is the lowest completion level which counts as a
	// completed habit.
	CompletedLevel = 2
)

// HabitCompletion is one row of the habit tracking log. Rows are written by
// RecordHabitCompletion, one per (user, habit, date), and scoring reads them.
type HabitCompletion struct {
	UserID  string         `gorm:"primaryKey"`
	Date    datatypes.Date `gorm:"primaryKey"`
	HabitID string         `gorm:"primaryKey"`

	CompletionLevel int
	IsPromoted      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
