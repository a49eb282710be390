package entities

import (
	"strings"
	"time"

	domainerrors "orderflow/contexts/commerce/customer-service/domain/errors"
)

type Customer struct {
	CustomerID string
	FullName   string
	CreatedAt  time.Time
}

func NewCustomer(customerID string, fullName string, createdAt time.Time) (Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return Customer{}, domainerrors.ErrCustomerIDMissing
	}
	return Customer{
		CustomerID: customerID,
		FullName:   fullName,
		CreatedAt:  createdAt.UTC(),
	}, nil
}
