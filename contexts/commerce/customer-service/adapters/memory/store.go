package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	application "orderflow/contexts/commerce/customer-service/application"
	"orderflow/contexts/commerce/customer-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/customer-service/domain/errors"
)

// Store is the process-scoped customer store used for local runtime and tests.
type Store struct {
	mu        sync.RWMutex
	customers map[string]entities.Customer
	order     []string
	logger    *slog.Logger
}

func NewStore(seed []entities.Customer, logger *slog.Logger) *Store {
	store := &Store{
		customers: make(map[string]entities.Customer, len(seed)),
		order:     make([]string, 0, len(seed)),
		logger:    application.ResolveLogger(logger),
	}
	for _, customer := range seed {
		if _, exists := store.customers[customer.CustomerID]; exists {
			continue
		}
		store.customers[customer.CustomerID] = customer
		store.order = append(store.order, customer.CustomerID)
	}
	return store
}

func (s *Store) Exists(_ context.Context, customerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.customers[customerID]
	return ok, nil
}

func (s *Store) Create(_ context.Context, customer entities.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.CustomerID]; exists {
		return domainerrors.ErrCustomerAlreadyExists
	}
	s.customers[customer.CustomerID] = customer
	s.order = append(s.order, customer.CustomerID)
	s.logger.Debug("customer stored",
		"event", "memory_customer_stored",
		"module", "commerce/customer-service",
		"layer", "adapter",
		"customer_id", customer.CustomerID,
	)
	return nil
}

func (s *Store) Get(_ context.Context, customerID string) (entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[customerID]
	if !ok {
		return entities.Customer{}, domainerrors.ErrCustomerNotFound
	}
	return customer, nil
}

func (s *Store) List(_ context.Context) ([]entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Customer, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.customers[id])
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
