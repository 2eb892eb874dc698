package index

import (
	"context"
	"strings"
	"sync"

	"github.com/Hanjarang/news/internal/news"

	"github.com/google/uuid"
)

// Memory is an in-memory index for tests and local runs without
// Elasticsearch. Search is a case-insensitive substring match over
// title and content.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]news.Document
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]news.Document)}
}

func (m *Memory) Save(ctx context.Context, doc news.Document) (news.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.ID] = doc
	return doc, nil
}

func (m *Memory) SaveAll(ctx context.Context, docs []news.Document) error {
	for _, doc := range docs {
		if _, err := m.Save(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*news.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (m *Memory) Search(ctx context.Context, query string) ([]news.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []news.Document
	for _, doc := range m.docs {
		if strings.Contains(strings.ToLower(doc.Title), needle) ||
			strings.Contains(strings.ToLower(doc.Content), needle) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *Memory) All(ctx context.Context) ([]news.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]news.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}
