package ports

import (
	"context"
	"time"

	"orderflow/contexts/commerce/activity-service/domain/entities"
	"orderflow/internal/shared/events"
)

type ActivityRepository interface {
	Append(ctx context.Context, entry entities.ActivityEntry) error
	List(ctx context.Context) ([]entities.ActivityEntry, error)
}

// EventDedupStore provides idempotent processing for consumed events.
// ReserveEvent reports true when eventID was already reserved with the same
// payload hash. ReleaseEvent drops a reservation held under payloadHash so a
// redelivery can be recorded again.
type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
	ReleaseEvent(ctx context.Context, eventID string, payloadHash string) error
}

type Clock interface {
	Now() time.Time
}

type EventEnvelope = events.Envelope

// EventRouter is the registration surface of the shared router.
type EventRouter interface {
	Subscribe(sub events.Subscription) error
	SubscribeFallback(topic string, name string, handler events.Handler) error
}
