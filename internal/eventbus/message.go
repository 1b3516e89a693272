package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// TopicMetadataKey records the topic a message was published to.
const TopicMetadataKey = "topic"

// NewJSONMessage encodes payload as JSON and carries the correlation ID of ctx.
func NewJSONMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(TopicMetadataKey, topic)
	msg.Metadata.Set("Content-Type", "application/json")

	correlationID := attr.CorrelationID(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)
	return msg, nil
}

// PublishJSON encodes payload and publishes it to topic.
func PublishJSON(ctx context.Context, publisher message.Publisher, topic string, payload any) error {
	msg, err := NewJSONMessage(ctx, topic, payload)
	if err != nil {
		return err
	}
	if err := publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	return nil
}
