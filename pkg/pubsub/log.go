package pubsub

import (
	"context"

	"github.com/vitalcycle/backend/pkg/xcontext"
)

type logPublisher struct{}

// NewLogPublisher returns a Publisher which only writes packs to the context
// logger. It is used when no broker is configured.
func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) Publish(ctx context.Context, topic string, pack *Pack) error {
	xcontext.Logger(ctx).Infof("Event %s [%s]: %s", topic, pack.Key, pack.Msg)
	return nil
}
