package messaging

import (
	"context"
	"log/slog"
	"sync"

	"orderflow/internal/shared/events"
)

// Memory is the in-process event bus used when no broker is configured.
// Each subscription owns a buffered channel; a full buffer applies
// backpressure to the publisher instead of dropping the event.
type Memory struct {
	mu          sync.RWMutex
	subscribers map[string][]chan events.Envelope
	buffer      int
	logger      *slog.Logger
}

func NewMemory(buffer int, logger *slog.Logger) *Memory {
	if buffer <= 0 {
		buffer = 128
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		subscribers: make(map[string][]chan events.Envelope),
		buffer:      buffer,
		logger:      logger,
	}
}

func (m *Memory) Publish(ctx context.Context, topic string, event events.Envelope) error {
	if event.Topic == "" {
		event.Topic = topic
	}

	m.mu.RLock()
	subs := append([]chan events.Envelope(nil), m.subscribers[topic]...)
	m.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		}
	}

	m.logger.Info("event published",
		"event", "memory_bus_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"subscribers", len(subs),
	)
	return nil
}

func (m *Memory) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler events.Handler,
) error {
	ch := make(chan events.Envelope, m.buffer)

	m.mu.Lock()
	m.subscribers[topic] = append(m.subscribers[topic], ch)
	m.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				m.removeSubscriber(topic, ch)
				return
			case event := <-ch:
				if err := handler(ctx, event); err != nil {
					m.logger.Error("consumer handler failed",
						"event", "memory_bus_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (m *Memory) removeSubscriber(topic string, target chan events.Envelope) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan events.Envelope, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	m.subscribers[topic] = filtered
}

func (m *Memory) Close() error {
	return nil
}
