package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	contractsv1 "orderflow/contracts/gen/events/v1"
	"orderflow/internal/shared/faults"
)

var ErrInvalidEvent = faults.New(faults.KindInvalidArgument, "event must declare a type and a topic")

// Publisher wraps domain events into envelopes and hands them to the bus.
// MaxAttempts above one enables exponential backoff between attempts;
// there is no buffering beyond that.
type Publisher struct {
	Bus         Bus
	Source      string
	MaxAttempts int
	Now         func() time.Time
	Logger      *slog.Logger
}

// Wrap builds the envelope for event on topic. The type tag is always taken
// from the event itself.
func (p Publisher) Wrap(topic string, event Event) (Envelope, error) {
	if event == nil || strings.TrimSpace(topic) == "" || strings.TrimSpace(event.EventType()) == "" {
		return Envelope{}, ErrInvalidEvent
	}
	data, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", event.EventType(), err)
	}
	now := time.Now().UTC()
	if p.Now != nil {
		now = p.Now().UTC()
	}
	return Envelope{
		EventID:         uuid.NewString(),
		EventType:       event.EventType(),
		Topic:           topic,
		SourceService:   p.Source,
		SpecVersion:     contractsv1.SpecVersion,
		OccurredAt:      now,
		PartitionKey:    event.PartitionKey(),
		DataContentType: contractsv1.ContentTypeJSON,
		Data:            data,
	}, nil
}

func (p Publisher) Publish(ctx context.Context, topic string, event Event) error {
	logger := resolveLogger(p.Logger)
	envelope, err := p.Wrap(topic, event)
	if err != nil {
		return err
	}

	attempts := p.MaxAttempts
	if attempts <= 1 {
		err = p.Bus.Publish(ctx, topic, envelope)
	} else {
		_, err = backoff.Retry(ctx, func() (struct{}, error) {
			if err := p.Bus.Publish(ctx, topic, envelope); err != nil {
				if errors.Is(err, context.Canceled) {
					return struct{}{}, backoff.Permanent(err)
				}
				return struct{}{}, err
			}
			return struct{}{}, nil
		},
			backoff.WithBackOff(backoff.NewExponentialBackOff()),
			backoff.WithMaxTries(uint(attempts)),
		)
	}
	if err != nil {
		return faults.Wrap(faults.KindTransport, "publish "+envelope.EventType, err)
	}

	logger.Debug("event handed to bus",
		"event", "events_publish",
		"module", "internal/shared/events",
		"layer", "shared",
		"topic", topic,
		"event_id", envelope.EventID,
		"event_type", envelope.EventType,
	)
	return nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
