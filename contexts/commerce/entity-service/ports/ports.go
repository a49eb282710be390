package ports

import (
	"context"
	"time"

	"orderflow/contexts/commerce/entity-service/domain/entities"
	"orderflow/internal/shared/events"
)

type EntityRepository interface {
	Exists(ctx context.Context, entityID string) (bool, error)
	Create(ctx context.Context, entity entities.Entity) error
	Get(ctx context.Context, entityID string) (entities.Entity, error)
	List(ctx context.Context) ([]entities.Entity, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
}

type EntityCreatedEvent struct {
	EntityID string `json:"entity_id"`
}

func (EntityCreatedEvent) EventType() string      { return "EntityCreated" }
func (e EntityCreatedEvent) PartitionKey() string { return e.EntityID }
