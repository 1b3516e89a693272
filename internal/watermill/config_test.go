package watermillutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_RetriesFailingHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := DefaultConfig()
	cfg.InitialInterval = time.Millisecond
	cfg.Registry = prometheus.NewRegistry()

	router, err := NewRouter(cfg, logger)
	require.NoError(t, err)

	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	attempts := make(chan struct{}, 10)
	router.AddNoPublisherHandler("flaky", "test.topic", pubsub, func(msg *message.Message) error {
		attempts <- struct{}{}
		if len(attempts) < 2 {
			return assert.AnError
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	require.NoError(t, pubsub.Publish("test.topic", message.NewMessage(watermill.NewUUID(), []byte("{}"))))

	assert.Eventually(t, func() bool { return len(attempts) >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, router.Close())
}
