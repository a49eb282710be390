package queries

import (
	"context"

	"orderflow/contexts/commerce/activity-service/domain/entities"
	"orderflow/contexts/commerce/activity-service/ports"
)

type ListActivityUseCase struct {
	Activities ports.ActivityRepository
}

func (u ListActivityUseCase) Execute(ctx context.Context) ([]entities.ActivityEntry, error) {
	return u.Activities.List(ctx)
}
