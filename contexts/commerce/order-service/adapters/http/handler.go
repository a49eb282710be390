package httpadapter

import (
	"context"
	"log/slog"

	application "orderflow/contexts/commerce/order-service/application"
	"orderflow/contexts/commerce/order-service/application/commands"
	"orderflow/contexts/commerce/order-service/application/queries"
	"orderflow/contexts/commerce/order-service/domain/entities"
	httptransport "orderflow/contexts/commerce/order-service/transport/http"
)

type Handler struct {
	CreateOrder commands.CreateOrderUseCase
	GetOrder    queries.GetOrderUseCase
	ListOrders  queries.ListOrdersUseCase
	Logger      *slog.Logger
}

// CreateOrderHandler godoc
// @Summary Create an order
// @Description Creates an order for an existing customer and copies the customer's full name onto it.
// @Tags order-service
// @Accept json
// @Produce json
// @Param request body httptransport.CreateOrderRequest true "Order payload"
// @Success 201 {object} httptransport.CreateOrderResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 412 {object} httptransport.ErrorResponse
// @Failure 502 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/orders [post]
func (h Handler) CreateOrderHandler(
	ctx context.Context,
	req *httptransport.CreateOrderRequest,
) (httptransport.CreateOrderResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create order request received",
		"event", "http_create_order_received",
		"module", "commerce/order-service",
		"layer", "transport",
	)

	cmd := commands.CreateOrderCommand{}
	if req != nil {
		cmd.Order = &commands.OrderInput{
			OrderID:     req.OrderID,
			CustomerID:  req.CustomerID,
			TotalAmount: req.TotalAmount,
		}
	}
	order, err := h.CreateOrder.Execute(ctx, cmd)
	if err != nil {
		logger.Warn("create order request failed",
			"event", "http_create_order_failed",
			"module", "commerce/order-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.CreateOrderResponse{}, err
	}
	return httptransport.CreateOrderResponse{Order: mapOrder(order)}, nil
}

// GetOrderHandler godoc
// @Summary Get an order
// @Tags order-service
// @Produce json
// @Param order_id path string true "Order id"
// @Success 200 {object} httptransport.GetOrderResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/orders/{order_id} [get]
func (h Handler) GetOrderHandler(ctx context.Context, orderID string) (httptransport.GetOrderResponse, error) {
	order, err := h.GetOrder.Execute(ctx, queries.GetOrderQuery{OrderID: orderID})
	if err != nil {
		return httptransport.GetOrderResponse{}, err
	}
	return httptransport.GetOrderResponse{Order: mapOrder(order)}, nil
}

// ListOrdersHandler godoc
// @Summary List orders
// @Tags order-service
// @Produce json
// @Success 200 {object} httptransport.ListOrdersResponse
// @Router /v1/orders [get]
func (h Handler) ListOrdersHandler(ctx context.Context) (httptransport.ListOrdersResponse, error) {
	orders, err := h.ListOrders.Execute(ctx)
	if err != nil {
		return httptransport.ListOrdersResponse{}, err
	}
	items := make([]httptransport.OrderDTO, 0, len(orders))
	for _, order := range orders {
		items = append(items, mapOrder(order))
	}
	return httptransport.ListOrdersResponse{Items: items}, nil
}

func mapOrder(order entities.Order) httptransport.OrderDTO {
	return httptransport.OrderDTO{
		OrderID:          order.OrderID,
		CustomerID:       order.CustomerID,
		CustomerFullName: order.CustomerFullName,
		TotalAmount:      order.TotalAmount,
		CreatedAt:        order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
