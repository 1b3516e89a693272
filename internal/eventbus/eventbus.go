// Package eventbus connects the service to its message broker. Topics are
// dotted ("bracket.completed.v1") and the first segment names the JetStream
// stream that carries them.
package eventbus

import (
	"context"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventBus publishes and subscribes Watermill messages and provisions the
// streams that back them.
type EventBus interface {
	message.Publisher
	message.Subscriber
	// CreateStream ensures a stream capturing "<streamName>.>" exists.
	CreateStream(ctx context.Context, streamName string) error
}

// StreamForTopic returns the stream that carries topic, or "" if the topic
// has no valid stream prefix.
func StreamForTopic(topic string) string {
	prefix, _, found := strings.Cut(topic, ".")
	if !found || !isValidStreamName(prefix) {
		return ""
	}
	return prefix
}

// isValidStreamName reports whether name is a legal NATS stream name: it
// contains only alphanumerics, hyphens or underscores and does not start or
// end with a hyphen.
func isValidStreamName(name string) bool {
	for _, r := range name {
		if !isValidRune(r) {
			return false
		}
	}
	return name != "" && name[0] != '-' && name[len(name)-1] != '-'
}

func isValidRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}
