package selection

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and early development.
type MemoryStore struct {
	mu  sync.Mutex
	sel map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sel: map[string]string{}}
}

func (s *MemoryStore) Toggle(ctx context.Context, sessionID, callID string) (string, error) {
	if sessionID == "" || callID == "" {
		return "", ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel[sessionID] == callID {
		delete(s.sel, sessionID)
		return "", nil
	}
	s.sel[sessionID] = callID
	return callID, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel[sessionID], nil
}
