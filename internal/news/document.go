package news

import (
	"context"
	"time"
)

// Document is one news article, as returned by the upstream API or the
// search index. UserID tags the member who requested it, nil for guests.
type Document struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	Language    string    `json:"language"`
	UserID      *int64    `json:"userId,omitempty"`
}

// Source is the upstream news API this service reads from.
type Source interface {
	SearchByKeyword(ctx context.Context, keyword string) ([]Document, error)
	SearchByPhrase(ctx context.Context, phrase string) ([]Document, error)
	RandomByKeyword(ctx context.Context, keyword string) (*Document, error)
	RandomByPhrase(ctx context.Context, phrase string) (*Document, error)
	RandomLatest(ctx context.Context) (*Document, error)
	RandomByCategory(ctx context.Context, category string) (*Document, error)
}

// Index is the search index documents are cached in.
type Index interface {
	Save(ctx context.Context, doc Document) (Document, error)
	SaveAll(ctx context.Context, docs []Document) error
	Get(ctx context.Context, id string) (*Document, error)
	Search(ctx context.Context, query string) ([]Document, error)
	All(ctx context.Context) ([]Document, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
