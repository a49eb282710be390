package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"orderflow/contexts/commerce/entity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/entity-service/domain/errors"
)

type Store struct {
	mu       sync.RWMutex
	entities map[string]entities.Entity
	order    []string
}

func NewStore() *Store {
	return &Store{entities: make(map[string]entities.Entity)}
}

func (s *Store) Exists(_ context.Context, entityID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entities[entityID]
	return ok, nil
}

func (s *Store) Create(_ context.Context, entity entities.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[entity.EntityID]; exists {
		return domainerrors.ErrEntityAlreadyExists
	}
	s.entities[entity.EntityID] = cloneEntity(entity)
	s.order = append(s.order, entity.EntityID)
	return nil
}

func (s *Store) Get(_ context.Context, entityID string) (entities.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.entities[entityID]
	if !ok {
		return entities.Entity{}, domainerrors.ErrEntityNotFound
	}
	return cloneEntity(entity), nil
}

func (s *Store) List(_ context.Context) ([]entities.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Entity, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, cloneEntity(s.entities[id]))
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneEntity(entity entities.Entity) entities.Entity {
	entity.Attributes = maps.Clone(entity.Attributes)
	return entity
}
