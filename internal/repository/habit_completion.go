package repository

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

type HabitCompletionRepository interface {
	Upsert(ctx context.Context, completion *entity.HabitCompletion) error
	GetByDate(ctx context.Context, userID string, date time.Time) ([]entity.HabitCompletion, error)

	// GetByDateRange returns completions of every date in [from, to], ordered
	// by date.
	GetByDateRange(ctx context.Context, userID string, from, to time.Time) ([]entity.HabitCompletion, error)
}

type habitCompletionRepository struct{}

func NewHabitCompletionRepository() *habitCompletionRepository {
	return &habitCompletionRepository{}
}

func (r *habitCompletionRepository) Upsert(ctx context.Context, completion *entity.HabitCompletion) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "date"},
				{Name: "habit_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"completion_level", "is_promoted", "updated_at",
			}),
		}).Create(completion).Error
}

func (r *habitCompletionRepository) GetByDate(
	ctx context.Context, userID string, date time.Time,
) ([]entity.HabitCompletion, error) {
	result := []entity.HabitCompletion{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND date=?", userID, datatypes.Date(date)).
		Order("habit_id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *habitCompletionRepository) GetByDateRange(
	ctx context.Context, userID string, from, to time.Time,
) ([]entity.HabitCompletion, error) {
	result := []entity.HabitCompletion{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND date>=? AND date<=?", userID, datatypes.Date(from), datatypes.Date(to)).
		Order("date, habit_id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
