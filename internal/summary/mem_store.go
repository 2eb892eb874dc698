package summary

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps summaries in memory for tests and local runs without a
// database.
type MemStore struct {
	mu        sync.Mutex
	summaries map[int64]*Summary
	nextID    int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		summaries: make(map[int64]*Summary),
		nextID:    1,
	}
}

func (m *MemStore) Create(ctx context.Context, s *Summary) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *s
	stored.ID = m.nextID
	m.nextID++
	m.summaries[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (m *MemStore) FindByID(ctx context.Context, id int64) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.summaries[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *MemStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Summary
	for _, s := range m.summaries {
		if s.UserID != nil && *s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.summaries[id]; !ok {
		return ErrNotFound
	}
	delete(m.summaries, id)
	return nil
}
