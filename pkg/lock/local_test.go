package lock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_localLocker_ReleasesIdleKeys(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			unlock, err := locker.Lock(ctx, fmt.Sprintf("user%d", i%5))
			if err != nil {
				t.Error(err)
				return
			}
			unlock()
		}(i)
	}
	wg.Wait()

	require.Equal(t, 0, locker.keys())
}

func Test_localLocker_CancelledWaiterLeavesKey(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), "user1")
	require.NoError(t, err)
	require.Equal(t, 1, locker.keys())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "user1")
	require.Error(t, err)
	require.Equal(t, 1, locker.keys())

	unlock()
	require.Equal(t, 0, locker.keys())

	// The key can be taken again after it was removed.
	unlock, err = locker.Lock(context.Background(), "user1")
	require.NoError(t, err)
	unlock()
}
