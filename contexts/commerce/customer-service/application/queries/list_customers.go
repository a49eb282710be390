package queries

import (
	"context"
	"log/slog"

	"orderflow/contexts/commerce/customer-service/domain/entities"
	"orderflow/contexts/commerce/customer-service/ports"
)

type ListCustomersUseCase struct {
	Customers ports.CustomerRepository
	Logger    *slog.Logger
}

func (u ListCustomersUseCase) Execute(ctx context.Context) ([]entities.Customer, error) {
	return u.Customers.List(ctx)
}
