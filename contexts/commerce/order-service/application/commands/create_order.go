package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "orderflow/contexts/commerce/order-service/application"
	"orderflow/contexts/commerce/order-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/order-service/domain/errors"
	"orderflow/contexts/commerce/order-service/ports"
)

const DefaultOrderCreatedTopic = "orders"

type OrderInput struct {
	OrderID     string
	CustomerID  string
	TotalAmount *float64
}

type CreateOrderCommand struct {
	Order *OrderInput
}

type CreateOrderUseCase struct {
	Orders      ports.OrderRepository
	Customers   ports.CustomerDirectory
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Topic       string
	Logger      *slog.Logger
}

// Execute runs validate, resolve customer, persist, publish. Nothing is
// written or called before validation passes, and a failed publish never
// fails the command.
func (u CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (entities.Order, error) {
	logger := application.ResolveLogger(u.Logger)
	if err := validate(cmd); err != nil {
		return entities.Order{}, err
	}
	input := cmd.Order
	customerID := strings.TrimSpace(input.CustomerID)

	orderID := strings.TrimSpace(input.OrderID)
	if orderID != "" {
		exists, err := u.Orders.Exists(ctx, orderID)
		if err != nil {
			logger.Error("order existence check failed",
				"event", "create_order_exists_failed",
				"module", "commerce/order-service",
				"layer", "application",
				"order_id", orderID,
				"error", err.Error(),
			)
			return entities.Order{}, err
		}
		if exists {
			return entities.Order{}, domainerrors.ErrOrderAlreadyExists
		}
	} else {
		generated, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return entities.Order{}, err
		}
		orderID = generated
	}

	customer, err := u.Customers.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, ports.ErrCustomerNotFound) {
			logger.Warn("order references unknown customer",
				"event", "create_order_customer_missing",
				"module", "commerce/order-service",
				"layer", "application",
				"order_id", orderID,
				"customer_id", customerID,
			)
			return entities.Order{}, domainerrors.ErrCustomerReferenceMissing
		}
		logger.Error("customer lookup failed",
			"event", "create_order_customer_lookup_failed",
			"module", "commerce/order-service",
			"layer", "application",
			"order_id", orderID,
			"customer_id", customerID,
			"error", err.Error(),
		)
		return entities.Order{}, err
	}

	order, err := entities.NewOrder(orderID, customerID, customer.FullName, *input.TotalAmount, u.now())
	if err != nil {
		return entities.Order{}, err
	}

	if err := ctx.Err(); err != nil {
		return entities.Order{}, err
	}
	if err := u.Orders.Create(ctx, order); err != nil {
		if !errors.Is(err, domainerrors.ErrOrderAlreadyExists) {
			logger.Error("order write failed",
				"event", "create_order_write_failed",
				"module", "commerce/order-service",
				"layer", "application",
				"order_id", order.OrderID,
				"error", err.Error(),
			)
		}
		return entities.Order{}, err
	}

	event := ports.OrderCreatedEvent{OrderID: order.OrderID, CustomerID: order.CustomerID}
	if u.Publisher != nil {
		if err := u.Publisher.Publish(ctx, u.topic(), event); err != nil {
			logger.Error("order created event publish failed",
				"event", "create_order_publish_failed",
				"module", "commerce/order-service",
				"layer", "application",
				"order_id", order.OrderID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("order created",
		"event", "order_created",
		"module", "commerce/order-service",
		"layer", "application",
		"order_id", order.OrderID,
		"customer_id", order.CustomerID,
	)
	return order, nil
}

func validate(cmd CreateOrderCommand) error {
	if cmd.Order == nil {
		return domainerrors.ErrOrderMissing
	}
	if strings.TrimSpace(cmd.Order.CustomerID) == "" {
		return domainerrors.ErrCustomerIDMissing
	}
	if cmd.Order.TotalAmount == nil {
		return domainerrors.ErrTotalAmountMissing
	}
	return nil
}

func (u CreateOrderUseCase) topic() string {
	if u.Topic == "" {
		return DefaultOrderCreatedTopic
	}
	return u.Topic
}

func (u CreateOrderUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
