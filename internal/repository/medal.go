package repository

import (
	"context"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type MedalRepository interface {
	// Upsert creates the medal or replaces the catalog fields of the medal with
	// the same name.
	Upsert(ctx context.Context, medal *entity.Medal) error
	GetByName(ctx context.Context, name string) (*entity.Medal, error)
	GetActive(ctx context.Context) ([]entity.Medal, error)
	GetAll(ctx context.Context) ([]entity.Medal, error)
}

type medalRepository struct{}

func NewMedalRepository() *medalRepository {
	return &medalRepository{}
}

func (r *medalRepository) Upsert(ctx context.Context, medal *entity.Medal) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description",
				"icon_url",
				"required_points",
				"required_level",
				"required_cycle_number",
				"criterion_type",
				"criterion_data",
				"is_active",
				"updated_at",
			}),
		}).Create(medal).Error
}

func (r *medalRepository) GetByName(ctx context.Context, name string) (*entity.Medal, error) {
	result := &entity.Medal{}
	if err := xcontext.DB(ctx).Take(result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *medalRepository) GetActive(ctx context.Context) ([]entity.Medal, error) {
	result := []entity.Medal{}
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Order("required_cycle_number, required_points, name").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *medalRepository) GetAll(ctx context.Context) ([]entity.Medal, error) {
	result := []entity.Medal{}
	err := xcontext.DB(ctx).
		Order("required_cycle_number, required_points, name").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
