package ports

import (
	"context"
	"time"

	"orderflow/contexts/commerce/customer-service/domain/entities"
	"orderflow/internal/shared/events"
)

// CustomerRepository is the customers record store. Create must enforce id
// uniqueness and report a duplicate as ErrCustomerAlreadyExists.
type CustomerRepository interface {
	Exists(ctx context.Context, customerID string) (bool, error)
	Create(ctx context.Context, customer entities.Customer) error
	Get(ctx context.Context, customerID string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
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

// CustomerCreatedEvent is published once a customer row is stored.
type CustomerCreatedEvent struct {
	CustomerID string `json:"customer_id"`
}

func (CustomerCreatedEvent) EventType() string {
	return "CustomerCreated"
}

func (e CustomerCreatedEvent) PartitionKey() string {
	return e.CustomerID
}
