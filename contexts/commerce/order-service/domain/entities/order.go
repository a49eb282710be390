package entities

import (
	"strings"
	"time"

	domainerrors "orderflow/contexts/commerce/order-service/domain/errors"
)

// Order keeps CustomerFullName as captured at creation; it is never re-synced
// with the customer record.
type Order struct {
	OrderID          string
	CustomerID       string
	CustomerFullName string
	TotalAmount      float64
	CreatedAt        time.Time
}

func NewOrder(orderID string, customerID string, customerFullName string, totalAmount float64, createdAt time.Time) (Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return Order{}, domainerrors.ErrOrderIDMissing
	}
	if strings.TrimSpace(customerID) == "" {
		return Order{}, domainerrors.ErrCustomerIDMissing
	}
	return Order{
		OrderID:          orderID,
		CustomerID:       customerID,
		CustomerFullName: customerFullName,
		TotalAmount:      totalAmount,
		CreatedAt:        createdAt.UTC(),
	}, nil
}
