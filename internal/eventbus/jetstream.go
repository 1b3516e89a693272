package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/nats-io/nkeys"
)

// JetStreamConfig configures NewJetStreamEventBus.
type JetStreamConfig struct {
	URL string
	// NKeySeed, when set, authenticates the connection with the NKey derived from it.
	NKeySeed string
	// ClientName identifies the connection on the server.
	ClientName string
}

// JetStreamEventBus implements EventBus on NATS JetStream.
type JetStreamEventBus struct {
	logger     *slog.Logger
	publisher  *nats.Publisher
	subscriber *nats.Subscriber
	conn       *nc.Conn
	js         jetstream.JetStream

	streamMu       sync.Mutex
	createdStreams map[string]bool
}

var _ EventBus = (*JetStreamEventBus)(nil)

// NewJetStreamEventBus connects to NATS and builds the Watermill publisher
// and subscriber. Streams are provisioned explicitly through CreateStream.
func NewJetStreamEventBus(ctx context.Context, cfg JetStreamConfig, logger *slog.Logger) (*JetStreamEventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	options, err := connectionOptions(cfg, logger)
	if err != nil {
		return nil, err
	}

	conn, err := nc.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: options,
			Marshaler:   &nats.NATSMarshaler{},
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		wmLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:            cfg.URL,
			NatsOptions:    options,
			Unmarshaler:    &nats.NATSMarshaler{},
			AckWaitTimeout: 30 * time.Second,
			CloseTimeout:   10 * time.Second,
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		wmLogger,
	)
	if err != nil {
		_ = publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create Watermill NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected to NATS JetStream", slog.String("url", conn.ConnectedUrlRedacted()))

	return &JetStreamEventBus{
		logger:         logger,
		publisher:      publisher,
		subscriber:     subscriber,
		conn:           conn,
		js:             js,
		createdStreams: make(map[string]bool),
	}, nil
}

func connectionOptions(cfg JetStreamConfig, logger *slog.Logger) ([]nc.Option, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("Error in subscription",
					slog.String("subject", s.Subject),
					slog.String("queue", s.Queue),
					slog.String("error", err.Error()),
				)
			} else {
				logger.Error("Error in connection", slog.String("error", err.Error()))
			}
		}),
	}
	if cfg.ClientName != "" {
		options = append(options, nc.Name(cfg.ClientName))
	}

	if cfg.NKeySeed != "" {
		opt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}

// nkeyOption signs the server nonce with the user NKey derived from seed.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive NATS nkey public key: %w", err)
	}
	if !nkeys.IsValidPublicUserKey(pub) {
		return nil, errors.New("NATS nkey seed is not a user seed")
	}
	return nc.Nkey(pub, func(nonce []byte) ([]byte, error) {
		return kp.Sign(nonce)
	}), nil
}

// Publish publishes messages to topic.
func (b *JetStreamEventBus) Publish(topic string, messages ...*message.Message) error {
	if err := b.publisher.Publish(topic, messages...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe subscribes to topic.
func (b *JetStreamEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	msgs, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return msgs, nil
}

// CreateStream creates the stream if it does not exist yet.
func (b *JetStreamEventBus) CreateStream(ctx context.Context, streamName string) error {
	if !isValidStreamName(streamName) {
		return fmt.Errorf("invalid stream name: %q", streamName)
	}

	b.streamMu.Lock()
	defer b.streamMu.Unlock()

	if b.createdStreams[streamName] {
		return nil
	}

	_, err := b.js.Stream(ctx, streamName)
	switch {
	case err == nil:
		b.logger.InfoContext(ctx, "Stream already exists", slog.String("stream", streamName))
	case errors.Is(err, jetstream.ErrStreamNotFound):
		_, err = b.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{streamName + ".>"},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		b.logger.InfoContext(ctx, "Stream created", slog.String("stream", streamName))
	default:
		return fmt.Errorf("failed to check if stream exists: %w", err)
	}

	b.createdStreams[streamName] = true
	return nil
}

// Close closes the publisher, subscriber and connection.
func (b *JetStreamEventBus) Close() error {
	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
	}
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
	}
	b.conn.Close()
	return errors.Join(errs...)
}
