package repository

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

type CycleRepository interface {
	Create(ctx context.Context, cycle *entity.Cycle) error
	GetByID(ctx context.Context, id string) (*entity.Cycle, error)
	GetCurrent(ctx context.Context, userID string) (*entity.Cycle, error)
	GetLatest(ctx context.Context, userID string) (*entity.Cycle, error)
	GetStartedBefore(ctx context.Context, userID string, before time.Time) (*entity.Cycle, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Cycle, error)
	GetUserIDsByStatus(ctx context.Context, statuses ...entity.CycleStatus) ([]string, error)
	UpdateStatus(ctx context.Context, id string, status entity.CycleStatus) error
	UpdateByID(ctx context.Context, id string, data *entity.Cycle) error
}

type cycleRepository struct{}

func NewCycleRepository() *cycleRepository {
	return &cycleRepository{}
}

func (r *cycleRepository) Create(ctx context.Context, cycle *entity.Cycle) error {
	return xcontext.DB(ctx).Create(cycle).Error
}

func (r *cycleRepository) GetByID(ctx context.Context, id string) (*entity.Cycle, error) {
	result := &entity.Cycle{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *cycleRepository) GetCurrent(ctx context.Context, userID string) (*entity.Cycle, error) {
	result := &entity.Cycle{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND status IN (?)", userID, entity.CurrentCycleStatuses).
		Order("cycle_number DESC").
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *cycleRepository) GetLatest(ctx context.Context, userID string) (*entity.Cycle, error) {
	result := &entity.Cycle{}
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("cycle_number DESC").
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetStartedBefore returns the cycle with the highest number which started
// strictly before the given time.
func (r *cycleRepository) GetStartedBefore(
	ctx context.Context, userID string, before time.Time,
) (*entity.Cycle, error) {
	result := &entity.Cycle{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND start_at<?", userID, before).
		Order("cycle_number DESC").
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *cycleRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Cycle, error) {
	result := []entity.Cycle{}
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("cycle_number ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *cycleRepository) GetUserIDsByStatus(
	ctx context.Context, statuses ...entity.CycleStatus,
) ([]string, error) {
	result := []string{}
	err := xcontext.DB(ctx).Model(&entity.Cycle{}).
		Where("status IN (?)", statuses).
		Distinct().
		Order("user_id").
		Pluck("user_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *cycleRepository) UpdateStatus(ctx context.Context, id string, status entity.CycleStatus) error {
	return xcontext.DB(ctx).Model(&entity.Cycle{}).
		Where("id=?", id).
		Update("status", status).Error
}

func (r *cycleRepository) UpdateByID(ctx context.Context, id string, data *entity.Cycle) error {
	return xcontext.DB(ctx).Model(&entity.Cycle{}).
		Where("id=?", id).
		Updates(data).Error
}
