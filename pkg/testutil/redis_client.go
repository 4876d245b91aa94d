package testutil

import (
	"context"
	"sync"
	"time"
)

// MockRedisClient keeps keys in memory. TTLs are ignored.
type MockRedisClient struct {
	mu   sync.Mutex
	data map[string]string

	SetNXFunc func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{data: map[string]string{}}
}

func (m *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.data[key]
	return ok, nil
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.data, key)
	}

	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.data[key], nil
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; ok {
		return false, nil
	}

	m.data[key] = value
	return true, nil
}

func (m *MockRedisClient) DelIfEqual(ctx context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[key] != value {
		return false, nil
	}

	delete(m.data, key)
	return true, nil
}

func (m *MockRedisClient) Close() error {
	return nil
}
