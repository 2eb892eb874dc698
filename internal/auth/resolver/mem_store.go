package resolver

import (
	"context"
	"sync"
)

// MemStore keeps users in memory with the same duplicate semantics as
// the SQL store. Used by tests and as the fallback when no database DSN
// is configured.
type MemStore struct {
	mu         sync.Mutex
	byIdentity map[string]*User
	byID       map[int64]*User
	nextID     int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		byIdentity: make(map[string]*User),
		byID:       make(map[int64]*User),
		nextID:     1,
	}
}

func identityKey(provider, providerID string) string {
	return provider + "\x00" + providerID
}

func (m *MemStore) FindByProviderID(ctx context.Context, provider, providerID string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byIdentity[identityKey(provider, providerID)]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MemStore) FindByID(ctx context.Context, id int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MemStore) Create(ctx context.Context, u *User) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := identityKey(u.Provider, u.ProviderID)
	if _, exists := m.byIdentity[key]; exists {
		return nil, ErrDuplicateIdentity
	}

	stored := *u
	stored.ID = m.nextID
	m.nextID++

	m.byIdentity[key] = &stored
	m.byID[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (m *MemStore) UpdateProfile(ctx context.Context, id int64, name, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Name = name
	u.Email = email
	return nil
}

// Count reports how many users exist. Test helper.
func (m *MemStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
