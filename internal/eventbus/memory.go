package eventbus

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// InMemoryEventBus is an EventBus backed by a Go channel pub/sub. It is used
// when no NATS URL is configured and in tests.
type InMemoryEventBus struct {
	pubsub *gochannel.GoChannel
}

var _ EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus returns an in-process EventBus.
func NewInMemoryEventBus(logger *slog.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 256,
		}, watermill.NewSlogLogger(logger)),
	}
}

func (b *InMemoryEventBus) Publish(topic string, messages ...*message.Message) error {
	return b.pubsub.Publish(topic, messages...)
}

func (b *InMemoryEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// CreateStream is a no-op; Go channels need no provisioning.
func (b *InMemoryEventBus) CreateStream(context.Context, string) error { return nil }

func (b *InMemoryEventBus) Close() error { return b.pubsub.Close() }
