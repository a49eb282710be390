package ports

import (
	"context"
	"time"

	"orderflow/contexts/commerce/order-service/domain/entities"
	"orderflow/internal/shared/events"
	"orderflow/internal/shared/faults"
)

// ErrCustomerNotFound is returned by CustomerDirectory implementations when
// the customer does not exist on the owning side.
var ErrCustomerNotFound = faults.New(faults.KindNotFound, "customer not found")

type OrderRepository interface {
	Exists(ctx context.Context, orderID string) (bool, error)
	Create(ctx context.Context, order entities.Order) error
	Get(ctx context.Context, orderID string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
}

type CustomerSnapshot struct {
	CustomerID string
	FullName   string
}

// CustomerDirectory resolves customers owned by the customer service.
// Implementations must honour ctx cancellation and deadlines.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, customerID string) (CustomerSnapshot, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type DomainEvent = events.Event

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event DomainEvent) error
}

type OrderCreatedEvent struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
}

func (OrderCreatedEvent) EventType() string {
	return "OrderCreated"
}

func (e OrderCreatedEvent) PartitionKey() string {
	return e.OrderID
}
