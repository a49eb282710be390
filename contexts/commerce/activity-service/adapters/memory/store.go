package memory

import (
	"context"
	"sync"
	"time"

	"orderflow/contexts/commerce/activity-service/domain/entities"
	domainerrors "orderflow/contexts/commerce/activity-service/domain/errors"
)

type dedupRecord struct {
	payloadHash string
	expiresAt   time.Time
}

// Store keeps activity entries and dedup reservations in process memory.
type Store struct {
	mu      sync.RWMutex
	entries []entities.ActivityEntry
	dedup   map[string]dedupRecord
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		dedup: make(map[string]dedupRecord),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Append(_ context.Context, entry entities.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) List(_ context.Context) ([]entities.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ActivityEntry(nil), s.entries...), nil
}

func (s *Store) ReserveEvent(_ context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.dedup[eventID]
	if ok && existing.expiresAt.After(s.now()) {
		if existing.payloadHash != payloadHash {
			return false, domainerrors.ErrEventPayloadConflict
		}
		return true, nil
	}
	s.dedup[eventID] = dedupRecord{payloadHash: payloadHash, expiresAt: expiresAt.UTC()}
	return false, nil
}

func (s *Store) ReleaseEvent(_ context.Context, eventID string, payloadHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.dedup[eventID]; ok && existing.payloadHash == payloadHash {
		delete(s.dedup, eventID)
	}
	return nil
}

func (s *Store) Now() time.Time {
	return s.now()
}
