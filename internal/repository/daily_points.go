package repository

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

type DailyPointsRepository interface {
	Upsert(ctx context.Context, points *entity.DailyPoints) error
	Get(ctx context.Context, userID string, date time.Time) (*entity.DailyPoints, error)
	Delete(ctx context.Context, userID string, date time.Time) error
	GetByCycleID(ctx context.Context, userID, cycleID string) ([]entity.DailyPoints, error)
	SumByCycleID(ctx context.Context, userID, cycleID string) (int, error)
	SumByUserID(ctx context.Context, userID string) (int, error)
}

type dailyPointsRepository struct{}

func NewDailyPointsRepository() *dailyPointsRepository {
	return &dailyPointsRepository{}
}

func (r *dailyPointsRepository) Upsert(ctx context.Context, points *entity.DailyPoints) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"cycle_id",
				"habit_points",
				"bonus_completion",
				"bonus_streak",
				"bonus_promoted_habit",
				"total_points",
				"habits_completed_count",
				"habits_total_count",
				"streak_on_date",
				"updated_at",
			}),
		}).Create(points).Error
}

func (r *dailyPointsRepository) Get(ctx context.Context, userID string, date time.Time) (*entity.DailyPoints, error) {
	result := &entity.DailyPoints{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND date=?", userID, datatypes.Date(date)).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *dailyPointsRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND date=?", userID, datatypes.Date(date)).
		Delete(&entity.DailyPoints{}).Error
}

func (r *dailyPointsRepository) GetByCycleID(
	ctx context.Context, userID, cycleID string,
) ([]entity.DailyPoints, error) {
	result := []entity.DailyPoints{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND cycle_id=?", userID, cycleID).
		Order("date").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *dailyPointsRepository) SumByCycleID(ctx context.Context, userID, cycleID string) (int, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.DailyPoints{}).
		Select("COALESCE(SUM(total_points), 0)").
		Where("user_id=? AND cycle_id=?", userID, cycleID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return int(total), nil
}

func (r *dailyPointsRepository) SumByUserID(ctx context.Context, userID string) (int, error) {
	var total int64
	err := xcontext.DB(ctx).Model(&entity.DailyPoints{}).
		Select("COALESCE(SUM(total_points), 0)").
		Where("user_id=?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return int(total), nil
}
