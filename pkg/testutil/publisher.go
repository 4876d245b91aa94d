package testutil

import (
	"context"
	"sync"

	"github.com/vitalcycle/backend/pkg/pubsub"
)

type PublishedPack struct {
	Topic string
	Pack  *pubsub.Pack
}

// MockPublisher records every published pack.
type MockPublisher struct {
	mu    sync.Mutex
	packs []PublishedPack

	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		if err := m.PublishFunc(ctx, topic, pack); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.packs = append(m.packs, PublishedPack{Topic: topic, Pack: pack})

	return nil
}

func (m *MockPublisher) Packs(topic string) []PublishedPack {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []PublishedPack
	for _, p := range m.packs {
		if p.Topic == topic {
			result = append(result, p)
		}
	}

	return result
}
