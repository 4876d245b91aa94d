package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vitalcycle/backend/internal/common"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/lock"
	"github.com/vitalcycle/backend/pkg/pubsub"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

// withUserTransaction runs fn while holding the gamification lock of the user,
// inside a single database transaction which is committed only if fn succeeds.
func withUserTransaction(
	ctx context.Context,
	locker lock.Locker,
	userID string,
	fn func(ctx context.Context) error,
) error {
	unlock, err := locker.Lock(ctx, common.RedisKeyGamification(userID))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot lock user %s: %v", userID, err)
		return errorx.Unknown
	}
	defer unlock()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := fn(ctx); err != nil {
		return err
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return errorx.Unknown
	}

	return nil
}

// publishEvent never fails the caller, events are best-effort.
func publishEvent(ctx context.Context, publisher pubsub.Publisher, topic, key string, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", topic, err)
		return
	}

	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(key), Msg: b}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish %s event: %v", topic, err)
	}
}

func newEventID(ctx context.Context) int64 {
	node := xcontext.SnowFlake(ctx)
	if node == nil {
		return 0
	}

	return node.Generate().Int64()
}

// parseDate parses a request date, empty means today.
func parseDate(s string, today time.Time) (time.Time, error) {
	if s == "" {
		return today, nil
	}

	date, err := dateutil.ParseDate(s)
	if err != nil {
		return time.Time{}, errorx.New(errorx.BadRequest, "Invalid date %s", s)
	}

	if date.After(today) {
		return time.Time{}, errorx.New(errorx.BadRequest, "Cannot process a future date")
	}

	return date, nil
}

func checkUserID(userID string) error {
	if userID == "" {
		return errorx.New(errorx.BadRequest, "Require user id")
	}

	return nil
}
