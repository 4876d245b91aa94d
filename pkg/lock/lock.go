package lock

import "context"

// Locker serializes work on a key, e.g. all gamification writes of one user.
type Locker interface {
	// Lock blocks until the key is acquired or ctx is done. The returned
	// function releases the key and must be called exactly once.
	Lock(ctx context.Context, key string) (func(), error)
}
