package workers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	application "orderflow/contexts/commerce/activity-service/application"
	"orderflow/contexts/commerce/activity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/activity-service/domain/errors"
	"orderflow/contexts/commerce/activity-service/ports"
	"orderflow/internal/shared/events"
)

const (
	HandlerCustomerCreated = "customer-created"
	HandlerOrderCreated    = "order-created"
	HandlerEntityCreated   = "entity-created"
	HandlerUnrecognized    = "unrecognized"
)

// EventRecorder turns routed envelopes into activity entries. Each envelope
// id is recorded at most once; redeliveries with the same payload are
// acknowledged without a second entry.
type EventRecorder struct {
	Activities ports.ActivityRepository
	Dedup      ports.EventDedupStore
	Clock      ports.Clock
	DedupTTL   time.Duration
	Logger     *slog.Logger
}

// Handler resolves a handler by the name used in subscription files.
func (r EventRecorder) Handler(name string) (events.Handler, error) {
	switch name {
	case HandlerCustomerCreated:
		return r.recordCustomerCreated, nil
	case HandlerOrderCreated:
		return r.recordOrderCreated, nil
	case HandlerEntityCreated:
		return r.recordEntityCreated, nil
	case HandlerUnrecognized:
		return r.recordUnrecognized, nil
	default:
		return nil, fmt.Errorf("%w: %q", domainerrors.ErrUnknownHandler, name)
	}
}

func (r EventRecorder) recordCustomerCreated(ctx context.Context, event ports.EventEnvelope) error {
	return r.record(ctx, event, HandlerCustomerCreated, "customer_id")
}

func (r EventRecorder) recordOrderCreated(ctx context.Context, event ports.EventEnvelope) error {
	return r.record(ctx, event, HandlerOrderCreated, "order_id")
}

func (r EventRecorder) recordEntityCreated(ctx context.Context, event ports.EventEnvelope) error {
	return r.record(ctx, event, HandlerEntityCreated, "entity_id")
}

func (r EventRecorder) recordUnrecognized(ctx context.Context, event ports.EventEnvelope) error {
	application.ResolveLogger(r.Logger).Warn("unrecognized event reached fallback",
		"event", "activity_event_unrecognized",
		"module", "commerce/activity-service",
		"layer", "worker",
		"topic", event.Topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
	)
	return r.record(ctx, event, HandlerUnrecognized, "")
}

// record stores one entry. subjectField names the payload key holding the
// created resource id; an empty subjectField marks a fallback entry.
func (r EventRecorder) record(ctx context.Context, event ports.EventEnvelope, route string, subjectField string) error {
	logger := application.ResolveLogger(r.Logger)
	if event.EventID == "" {
		return domainerrors.ErrEventIDMissing
	}

	subjectID := ""
	if subjectField != "" {
		var payload map[string]any
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return fmt.Errorf("%w: %v", domainerrors.ErrMalformedPayload, err)
		}
		value, ok := payload[subjectField].(string)
		if !ok || value == "" {
			return fmt.Errorf("%w: %s missing", domainerrors.ErrMalformedPayload, subjectField)
		}
		subjectID = value
	}

	now := r.now()
	payloadHash := hashPayload(event.Data)
	alreadyProcessed, err := r.Dedup.ReserveEvent(ctx, event.EventID, payloadHash, now.Add(r.dedupTTL()))
	if err != nil {
		logger.Error("activity event dedupe failed",
			"event", "activity_event_dedupe_failed",
			"module", "commerce/activity-service",
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	if alreadyProcessed {
		logger.Debug("activity event already recorded",
			"event", "activity_event_replayed",
			"module", "commerce/activity-service",
			"layer", "worker",
			"event_id", event.EventID,
		)
		return nil
	}

	entry := entities.ActivityEntry{
		EventID:    event.EventID,
		EventType:  event.EventType,
		Topic:      event.Topic,
		Source:     event.SourceService,
		SubjectID:  subjectID,
		Route:      route,
		Recognized: subjectField != "",
		OccurredAt: event.OccurredAt.UTC(),
		RecordedAt: now,
	}
	if err := r.Activities.Append(ctx, entry); err != nil {
		// Release so the redelivery records the entry instead of skipping it.
		if releaseErr := r.Dedup.ReleaseEvent(ctx, event.EventID, payloadHash); releaseErr != nil {
			logger.Error("activity event reservation release failed",
				"event", "activity_event_release_failed",
				"module", "commerce/activity-service",
				"layer", "worker",
				"event_id", event.EventID,
				"error", releaseErr.Error(),
			)
			return errors.Join(err, releaseErr)
		}
		return err
	}

	logger.Info("activity event recorded",
		"event", "activity_event_recorded",
		"module", "commerce/activity-service",
		"layer", "worker",
		"route", route,
		"topic", event.Topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"subject_id", subjectID,
	)
	return nil
}

func (r EventRecorder) now() time.Time {
	if r.Clock == nil {
		return time.Now().UTC()
	}
	return r.Clock.Now().UTC()
}

func (r EventRecorder) dedupTTL() time.Duration {
	if r.DedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return r.DedupTTL
}

func hashPayload(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
