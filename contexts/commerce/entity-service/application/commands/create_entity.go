package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "orderflow/contexts/commerce/entity-service/application"
	"orderflow/contexts/commerce/entity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/entity-service/domain/errors"
	"orderflow/contexts/commerce/entity-service/ports"
)

const DefaultEntityCreatedTopic = "entities"

type EntityInput struct {
	EntityID   string
	Name       string
	Attributes map[string]string
}

type CreateEntityCommand struct {
	Entity *EntityInput
}

type CreateEntityUseCase struct {
	Entities    ports.EntityRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Topic       string
	Logger      *slog.Logger
}

func (u CreateEntityUseCase) Execute(ctx context.Context, cmd CreateEntityCommand) (entities.Entity, error) {
	logger := application.ResolveLogger(u.Logger)
	if cmd.Entity == nil {
		return entities.Entity{}, domainerrors.ErrEntityMissing
	}

	entityID := strings.TrimSpace(cmd.Entity.EntityID)
	if entityID == "" {
		generated, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return entities.Entity{}, err
		}
		entityID = generated
	} else {
		exists, err := u.Entities.Exists(ctx, entityID)
		if err != nil {
			return entities.Entity{}, err
		}
		if exists {
			return entities.Entity{}, domainerrors.ErrEntityAlreadyExists
		}
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now()
	}
	entity, err := entities.NewEntity(entityID, cmd.Entity.Name, cmd.Entity.Attributes, now)
	if err != nil {
		return entities.Entity{}, err
	}
	if err := ctx.Err(); err != nil {
		return entities.Entity{}, err
	}
	if err := u.Entities.Create(ctx, entity); err != nil {
		return entities.Entity{}, err
	}

	topic := u.Topic
	if topic == "" {
		topic = DefaultEntityCreatedTopic
	}
	if u.Publisher != nil {
		if err := u.Publisher.Publish(ctx, topic, ports.EntityCreatedEvent{EntityID: entity.EntityID}); err != nil {
			logger.Error("entity created event publish failed",
				"event", "create_entity_publish_failed",
				"module", "commerce/entity-service",
				"layer", "application",
				"entity_id", entity.EntityID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("entity created",
		"event", "entity_created",
		"module", "commerce/entity-service",
		"layer", "application",
		"entity_id", entity.EntityID,
	)
	return entity, nil
}
