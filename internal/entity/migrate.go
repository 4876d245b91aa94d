package entity

import (
	"context"

	"github.com/vitalcycle/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Cycle{},
		&HabitCompletion{},
		&DailyPoints{},
		&UserLevel{},
		&Medal{},
		&AwardedMedal{},
	)
}
