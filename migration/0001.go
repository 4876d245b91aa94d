package migration

import (
	"context"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

// migrate0001 fills the criterion and required level of medals created before
// both columns were mandatory in catalogs.
func migrate0001(ctx context.Context) error {
	db := xcontext.DB(ctx)

	err := db.Model(&entity.Medal{}).
		Where("criterion_type IS NULL OR criterion_type = ''").
		Update("criterion_type", entity.PointsAndLevelCriterion).Error
	if err != nil {
		return err
	}

	return db.Model(&entity.Medal{}).
		Where("required_level IS NULL OR required_level = ''").
		Update("required_level", entity.LevelNovato).Error
}
