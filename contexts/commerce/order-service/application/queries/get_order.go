package queries

import (
	"context"
	"log/slog"
	"strings"

	application "orderflow/contexts/commerce/order-service/application"
	"orderflow/contexts/commerce/order-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/order-service/domain/errors"
	"orderflow/contexts/commerce/order-service/ports"
)

type GetOrderQuery struct {
	OrderID string
}

type GetOrderUseCase struct {
	Orders ports.OrderRepository
	Logger *slog.Logger
}

func (u GetOrderUseCase) Execute(ctx context.Context, query GetOrderQuery) (entities.Order, error) {
	orderID := strings.TrimSpace(query.OrderID)
	if orderID == "" {
		return entities.Order{}, domainerrors.ErrOrderIDMissing
	}
	order, err := u.Orders.Get(ctx, orderID)
	if err != nil {
		application.ResolveLogger(u.Logger).Debug("order lookup failed",
			"event", "get_order_failed",
			"module", "commerce/order-service",
			"layer", "application",
			"order_id", orderID,
			"error", err.Error(),
		)
		return entities.Order{}, err
	}
	return order, nil
}
