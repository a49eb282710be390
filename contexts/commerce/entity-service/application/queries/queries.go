package queries

import (
	"context"
	"strings"

	"orderflow/contexts/commerce/entity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/entity-service/domain/errors"
	"orderflow/contexts/commerce/entity-service/ports"
)

type GetEntityUseCase struct {
	Entities ports.EntityRepository
}

func (u GetEntityUseCase) Execute(ctx context.Context, entityID string) (entities.Entity, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return entities.Entity{}, domainerrors.ErrEntityIDMissing
	}
	return u.Entities.Get(ctx, entityID)
}

type ListEntitiesUseCase struct {
	Entities ports.EntityRepository
}

func (u ListEntitiesUseCase) Execute(ctx context.Context) ([]entities.Entity, error) {
	return u.Entities.List(ctx)
}
