package calendar

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and early development.
type MemoryStore struct {
	mu     sync.Mutex
	events map[string][]Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: map[string][]Event{}}
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, events []Event) error {
	if sessionID == "" {
		return ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[sessionID] = append([]Event(nil), events...)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]Event, error) {
	if sessionID == "" {
		return nil, ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event{}, s.events[sessionID]...), nil
}
