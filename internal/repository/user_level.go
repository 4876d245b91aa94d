package repository

import (
	"context"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserLevelRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserLevel, error)
	Upsert(ctx context.Context, level *entity.UserLevel) error
}

type userLevelRepository struct{}

func NewUserLevelRepository() *userLevelRepository {
	return &userLevelRepository{}
}

func (r *userLevelRepository) Get(ctx context.Context, userID string) (*entity.UserLevel, error) {
	result := &entity.UserLevel{}
	if err := xcontext.DB(ctx).Take(result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userLevelRepository) Upsert(ctx context.Context, level *entity.UserLevel) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_cycle_id",
				"current_level",
				"current_cycle_points",
				"total_points_all_time",
				"current_streak",
				"longest_streak",
				"last_activity_date",
				"updated_at",
			}),
		}).Create(level).Error
}
