package events

import (
	"context"

	contractsv1 "orderflow/contracts/gen/events/v1"
)

// Envelope is the shared event shape used on every orderflow topic.
type Envelope = contractsv1.Envelope

// Event is a domain event body. EventType becomes the envelope type tag and
// PartitionKey keeps events for one resource ordered on partitioned buses.
type Event interface {
	EventType() string
	PartitionKey() string
}

// Handler consumes one delivered envelope.
type Handler func(ctx context.Context, event Envelope) error

// Bus hands envelopes to the transport.
type Bus interface {
	Publish(ctx context.Context, topic string, event Envelope) error
}

// Subscriber registers a topic consumer callback on the transport.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler Handler) error
}
