package bootstrap

import (
	"context"
	"errors"

	customerqueries "orderflow/contexts/commerce/customer-service/application/queries"
	customererrors "orderflow/contexts/commerce/customer-service/domain/errors"
	orderports "orderflow/contexts/commerce/order-service/ports"
)

// customerLookupDirectory serves the order service's customer lookups from
// the customer module in the same process. It is used when no customers
// gRPC address is configured.
type customerLookupDirectory struct {
	lookup customerqueries.GetCustomerUseCase
}

func (d customerLookupDirectory) GetCustomer(ctx context.Context, customerID string) (orderports.CustomerSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return orderports.CustomerSnapshot{}, err
	}
	customer, err := d.lookup.Execute(ctx, customerqueries.GetCustomerQuery{CustomerID: customerID})
	if err != nil {
		if errors.Is(err, customererrors.ErrCustomerNotFound) {
			return orderports.CustomerSnapshot{}, orderports.ErrCustomerNotFound
		}
		return orderports.CustomerSnapshot{}, err
	}
	return orderports.CustomerSnapshot{
		CustomerID: customer.CustomerID,
		FullName:   customer.FullName,
	}, nil
}
