package queries

import (
	"context"
	"log/slog"

	"orderflow/contexts/commerce/order-service/domain/entities"
	"orderflow/contexts/commerce/order-service/ports"
)

type ListOrdersUseCase struct {
	Orders ports.OrderRepository
	Logger *slog.Logger
}

func (u ListOrdersUseCase) Execute(ctx context.Context) ([]entities.Order, error) {
	return u.Orders.List(ctx)
}
