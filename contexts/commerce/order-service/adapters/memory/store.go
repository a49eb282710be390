package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	application "orderflow/contexts/commerce/order-service/application"
	"orderflow/contexts/commerce/order-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/order-service/domain/errors"
	"orderflow/contexts/commerce/order-service/ports"
)

// Store is the process-scoped order store. All state sits behind one mutex.
type Store struct {
	mu     sync.RWMutex
	orders map[string]entities.Order
	order  []string
	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		orders: make(map[string]entities.Order),
		order:  make([]string, 0),
		logger: application.ResolveLogger(logger),
	}
}

func (s *Store) Exists(_ context.Context, orderID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.orders[orderID]
	return ok, nil
}

func (s *Store) Create(_ context.Context, order entities.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.OrderID]; exists {
		return domainerrors.ErrOrderAlreadyExists
	}
	s.orders[order.OrderID] = order
	s.order = append(s.order, order.OrderID)
	return nil
}

func (s *Store) Get(_ context.Context, orderID string) (entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	return order, nil
}

func (s *Store) List(_ context.Context) ([]entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Order, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.orders[id])
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// StaticCustomers is a fixed CustomerDirectory for local runs and tests.
type StaticCustomers map[string]string

func (c StaticCustomers) GetCustomer(ctx context.Context, customerID string) (ports.CustomerSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return ports.CustomerSnapshot{}, err
	}
	fullName, ok := c[customerID]
	if !ok {
		return ports.CustomerSnapshot{}, ports.ErrCustomerNotFound
	}
	return ports.CustomerSnapshot{CustomerID: customerID, FullName: fullName}, nil
}
