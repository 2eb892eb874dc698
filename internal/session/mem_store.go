package session

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory session store for tests and local runs
// without Redis. Expired sessions are dropped on read.
type MemStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string]Session)}
}

func (m *MemStore) Create(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, sessionID)
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (m *MemStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}
