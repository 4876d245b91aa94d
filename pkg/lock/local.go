package lock

import (
	"context"
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// slot is shared by every caller holding or waiting for one key. It is
// removed from the map when the last of them leaves, so the map only holds
// keys which are in use.
type slot struct {
	mu      sync.Mutex
	refs    int
	removed bool

	held chan struct{}
}

type localLocker struct {
	slots *xsync.MapOf[string, *slot]
}

// NewLocalLocker returns a Locker which only serializes callers inside the
// current process.
func NewLocalLocker() *localLocker {
	return &localLocker{slots: xsync.NewMapOf[*slot]()}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquire(key)

	select {
	case s.held <- struct{}{}:
		return func() {
			<-s.held
			l.release(key, s)
		}, nil
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	}
}

func (l *localLocker) acquire(key string) *slot {
	for {
		s, _ := l.slots.LoadOrStore(key, &slot{held: make(chan struct{}, 1)})

		s.mu.Lock()
		if s.removed {
			// The last user left between the load and the lock.
			s.mu.Unlock()
			continue
		}
		s.refs++
		s.mu.Unlock()

		return s
	}
}

func (l *localLocker) release(key string, s *slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		s.removed = true
		l.slots.Delete(key)
	}
}

func (l *localLocker) keys() int {
	n := 0
	l.slots.Range(func(string, *slot) bool {
		n++
		return true
	})

	return n
}
