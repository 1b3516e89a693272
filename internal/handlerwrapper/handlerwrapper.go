// Package handlerwrapper adapts typed event handlers to Watermill handlers.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/slackline-champs/internal/eventbus"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result is an outgoing event produced by a handler.
type Result struct {
	Topic   string
	Payload any
}

// WrapTransformingTyped decodes the message payload into T, runs handler and
// publishes every Result it returns. A payload that cannot be decoded is
// logged and acknowledged, since redelivery cannot fix it.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	publisher message.Publisher,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()
		if correlationID := middleware.MessageCorrelationID(msg); correlationID != "" {
			ctx = attr.WithCorrelationID(ctx, correlationID)
		}

		var span trace.Span
		if tracer != nil {
			ctx, span = tracer.Start(ctx, handlerName, trace.WithAttributes(
				attribute.String("message.uuid", msg.UUID),
				attribute.String("handler", handlerName),
			))
			defer span.End()
		}

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return nil, nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			if span != nil {
				span.RecordError(err)
			}
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		for _, r := range results {
			if publisher == nil {
				return nil, fmt.Errorf("%s: produced %s without a publisher", handlerName, r.Topic)
			}
			if err := eventbus.PublishJSON(ctx, publisher, r.Topic, r.Payload); err != nil {
				return nil, fmt.Errorf("%s: %w", handlerName, err)
			}
		}
		return nil, nil
	}
}
