package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/segmentio/kafka-go"

	"orderflow/internal/shared/events"
)

const (
	headerEventType = "ce-type"
	headerEventID   = "ce-id"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Kafka is the broker-backed event bus. Offsets are committed after the
// handler returns, so a crash mid-handler redelivers the message.
type Kafka struct {
	brokers []string
	writer  *kafka.Writer
	logger  *slog.Logger

	// fetchBackOff paces refetches after a broker error.
	fetchBackOff func() backoff.BackOff

	mu      sync.Mutex
	readers []*kafka.Reader
}

func defaultFetchBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	return b
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka requires at least one broker")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Kafka{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		logger:       logger,
		fetchBackOff: defaultFetchBackOff,
	}, nil
}

func (k *Kafka) Publish(ctx context.Context, topic string, event events.Envelope) error {
	if event.Topic == "" {
		event.Topic = topic
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(event.PartitionKey),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.EventType)},
			{Key: headerEventID, Value: []byte(event.EventID)},
		},
	})
	if err != nil {
		k.logger.Error("kafka write failed",
			"event", "kafka_publish_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return fmt.Errorf("kafka write %s: %w", topic, err)
	}

	k.logger.Info("event published",
		"event", "kafka_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return nil
}

func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler events.Handler,
) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		GroupID: consumerGroup,
		Topic:   topic,
	})

	k.mu.Lock()
	k.readers = append(k.readers, reader)
	k.mu.Unlock()

	go k.consume(ctx, reader, topic, consumerGroup, handler)
	return nil
}

func (k *Kafka) consume(
	ctx context.Context,
	reader messageReader,
	topic string,
	consumerGroup string,
	handler events.Handler,
) {
	newBackOff := k.fetchBackOff
	if newBackOff == nil {
		newBackOff = defaultFetchBackOff
	}
	retry := newBackOff()
	for {
		message, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			wait := retry.NextBackOff()
			k.logger.Error("kafka fetch failed",
				"event", "kafka_fetch_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"consumer_group", consumerGroup,
				"retry_in", wait.String(),
				"error", err.Error(),
			)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			continue
		}
		retry.Reset()

		envelope, err := decodeEnvelope(message)
		if err != nil {
			k.logger.Error("kafka message is not an envelope",
				"event", "kafka_decode_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"offset", message.Offset,
				"error", err.Error(),
			)
		} else if err := handler(ctx, envelope); err != nil {
			k.logger.Error("consumer handler failed",
				"event", "kafka_consume_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"consumer_group", consumerGroup,
				"event_id", envelope.EventID,
				"event_type", envelope.EventType,
				"error", err.Error(),
			)
		}

		if err := reader.CommitMessages(ctx, message); err != nil && ctx.Err() == nil {
			k.logger.Error("kafka commit failed",
				"event", "kafka_commit_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"topic", topic,
				"offset", message.Offset,
				"error", err.Error(),
			)
		}
	}
}

func decodeEnvelope(message kafka.Message) (events.Envelope, error) {
	var envelope events.Envelope
	if err := json.Unmarshal(message.Value, &envelope); err != nil {
		return events.Envelope{}, err
	}
	if envelope.Topic == "" {
		envelope.Topic = message.Topic
	}
	if envelope.EventType == "" {
		envelope.EventType = headerValue(message.Headers, headerEventType)
	}
	if envelope.EventID == "" {
		envelope.EventID = headerValue(message.Headers, headerEventID)
	}
	return envelope, nil
}

func headerValue(headers []kafka.Header, key string) string {
	for _, header := range headers {
		if header.Key == key {
			return string(header.Value)
		}
	}
	return ""
}

func (k *Kafka) Close() error {
	k.mu.Lock()
	readers := k.readers
	k.readers = nil
	k.mu.Unlock()

	errs := []error{k.writer.Close()}
	for _, reader := range readers {
		errs = append(errs, reader.Close())
	}
	return errors.Join(errs...)
}
