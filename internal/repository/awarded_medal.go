package repository

import (
	"context"

	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AwardedMedalRepository interface {
	// Create inserts the award if the user does not hold the medal yet. It
	// reports whether a new row was written.
	Create(ctx context.Context, awarded *entity.AwardedMedal) (bool, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.AwardedMedal, error)
	GetMedalIDs(ctx context.Context, userID string) ([]string, error)
	UpdateNotification(ctx context.Context, userID string) error
}

type awardedMedalRepository struct{}

func NewAwardedMedalRepository() *awardedMedalRepository {
	return &awardedMedalRepository{}
}

func (r *awardedMedalRepository) Create(ctx context.Context, awarded *entity.AwardedMedal) (bool, error) {
	tx := xcontext.DB(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(awarded)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *awardedMedalRepository) GetByUserID(ctx context.Context, userID string) ([]entity.AwardedMedal, error) {
	result := []entity.AwardedMedal{}
	err := xcontext.DB(ctx).
		Preload("Medal").
		Where("user_id=?", userID).
		Order("earned_at, medal_id").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *awardedMedalRepository) GetMedalIDs(ctx context.Context, userID string) ([]string, error) {
	result := []string{}
	err := xcontext.DB(ctx).Model(&entity.AwardedMedal{}).
		Where("user_id=?", userID).
		Pluck("medal_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *awardedMedalRepository) UpdateNotification(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Model(&entity.AwardedMedal{}).
		Where("user_id=? AND was_notified=?", userID, false).
		Update("was_notified", true).Error
}
