package summary

import (
	"context"
	"errors"
	"time"
)

// Summary is a persisted summarization result. UserID is nil when a
// guest requested the summary (guest summaries are never persisted).
type Summary struct {
	ID           int64     `json:"id"`
	UserID       *int64    `json:"userId,omitempty"`
	OriginalText string    `json:"originalText"`
	SummaryText  string    `json:"summaryText"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ErrNotFound is returned when no summary exists for the given id.
var ErrNotFound = errors.New("summary not found")

type Store interface {
	Create(ctx context.Context, s *Summary) (*Summary, error)
	FindByID(ctx context.Context, id int64) (*Summary, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Summary, error)
	Delete(ctx context.Context, id int64) error
}
