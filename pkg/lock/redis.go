package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"github.com/vitalcycle/backend/pkg/xredis"
)

const retryInterval = 50 * time.Millisecond

type redisLocker struct {
	client xredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisLocker returns a Locker shared by every process connected to the
// same redis. The ttl bounds how long a crashed holder keeps the key.
func NewRedisLocker(client xredis.Client, prefix string, ttl time.Duration) *redisLocker {
	return &redisLocker{client: client, prefix: prefix, ttl: ttl}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl)
		if err != nil {
			return nil, err
		}

		if ok {
			break
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return func() {
		// The caller context may already be cancelled at this point.
		if _, err := l.client.DelIfEqual(context.Background(), redisKey, token); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot release lock %s: %v", redisKey, err)
		}
	}, nil
}
