package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "orderflow/contexts/commerce/customer-service/application"
	"orderflow/contexts/commerce/customer-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/customer-service/domain/errors"
	"orderflow/contexts/commerce/customer-service/ports"
)

const DefaultCustomerCreatedTopic = "customer-created"

type CustomerInput struct {
	CustomerID string
	FullName   string
}

type CreateCustomerCommand struct {
	Customer *CustomerInput
}

type CreateCustomerUseCase struct {
	Customers   ports.CustomerRepository
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Topic       string
	Logger      *slog.Logger
}

// Execute creates a customer in this order:
// 1) request validation
// 2) optimistic duplicate check for caller-supplied ids
// 3) persistence (the repository unique key is authoritative)
// 4) best-effort CustomerCreated publication.
func (u CreateCustomerUseCase) Execute(ctx context.Context, cmd CreateCustomerCommand) (entities.Customer, error) {
	logger := application.ResolveLogger(u.Logger)
	if cmd.Customer == nil {
		return entities.Customer{}, domainerrors.ErrCustomerMissing
	}

	customerID := strings.TrimSpace(cmd.Customer.CustomerID)
	if customerID != "" {
		exists, err := u.Customers.Exists(ctx, customerID)
		if err != nil {
			logger.Error("customer existence check failed",
				"event", "create_customer_exists_failed",
				"module", "commerce/customer-service",
				"layer", "application",
				"customer_id", customerID,
				"error", err.Error(),
			)
			return entities.Customer{}, err
		}
		if exists {
			logger.Warn("customer id already taken",
				"event", "create_customer_duplicate",
				"module", "commerce/customer-service",
				"layer", "application",
				"customer_id", customerID,
			)
			return entities.Customer{}, domainerrors.ErrCustomerAlreadyExists
		}
	} else {
		generated, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return entities.Customer{}, err
		}
		customerID = generated
	}

	customer, err := entities.NewCustomer(customerID, cmd.Customer.FullName, u.now())
	if err != nil {
		return entities.Customer{}, err
	}

	if err := ctx.Err(); err != nil {
		return entities.Customer{}, err
	}
	if err := u.Customers.Create(ctx, customer); err != nil {
		if !errors.Is(err, domainerrors.ErrCustomerAlreadyExists) {
			logger.Error("customer write failed",
				"event", "create_customer_write_failed",
				"module", "commerce/customer-service",
				"layer", "application",
				"customer_id", customer.CustomerID,
				"error", err.Error(),
			)
		}
		return entities.Customer{}, err
	}

	// No outbox: a crash between the write above and this publish loses the event.
	if u.Publisher == nil {
		logger.Warn("customer created without event publisher",
			"event", "create_customer_publisher_missing",
			"module", "commerce/customer-service",
			"layer", "application",
			"customer_id", customer.CustomerID,
		)
	} else if err := u.Publisher.Publish(ctx, u.topic(), ports.CustomerCreatedEvent{CustomerID: customer.CustomerID}); err != nil {
		logger.Error("customer created event publish failed",
			"event", "create_customer_publish_failed",
			"module", "commerce/customer-service",
			"layer", "application",
			"customer_id", customer.CustomerID,
			"error", err.Error(),
		)
	}

	logger.Info("customer created",
		"event", "customer_created",
		"module", "commerce/customer-service",
		"layer", "application",
		"customer_id", customer.CustomerID,
	)
	return customer, nil
}

func (u CreateCustomerUseCase) topic() string {
	if u.Topic == "" {
		return DefaultCustomerCreatedTopic
	}
	return u.Topic
}

func (u CreateCustomerUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
