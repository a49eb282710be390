package queries

import (
	"context"
	"log/slog"
	"strings"

	application "orderflow/contexts/commerce/customer-service/application"
	"orderflow/contexts/commerce/customer-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/customer-service/domain/errors"
	"orderflow/contexts/commerce/customer-service/ports"
)

type GetCustomerQuery struct {
	CustomerID string
}

type GetCustomerUseCase struct {
	Customers ports.CustomerRepository
	Logger    *slog.Logger
}

func (u GetCustomerUseCase) Execute(ctx context.Context, query GetCustomerQuery) (entities.Customer, error) {
	customerID := strings.TrimSpace(query.CustomerID)
	if customerID == "" {
		return entities.Customer{}, domainerrors.ErrCustomerIDMissing
	}
	customer, err := u.Customers.Get(ctx, customerID)
	if err != nil {
		application.ResolveLogger(u.Logger).Debug("customer lookup failed",
			"event", "get_customer_failed",
			"module", "commerce/customer-service",
			"layer", "application",
			"customer_id", customerID,
			"error", err.Error(),
		)
		return entities.Customer{}, err
	}
	return customer, nil
}
