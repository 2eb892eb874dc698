package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hanjarang/news/internal/auth"
)

// Summarizer produces a summary for a block of text. Implemented by the
// AI proxy client.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ErrEmptyInput is returned when the original text is blank.
var ErrEmptyInput = errors.New("original text cannot be empty")

// Response is what summary creation returns. Guests get the summary
// without persistence, so ID stays nil and IsSaved false.
type Response struct {
	ID           *int64    `json:"id"`
	OriginalText string    `json:"originalText"`
	SummaryText  string    `json:"summaryText"`
	CreatedAt    time.Time `json:"createdAt"`
	UserID       *int64    `json:"userId,omitempty"`
	IsSaved      bool      `json:"isSaved"`
}

type Service struct {
	store      Store
	summarizer Summarizer
	now        func() time.Time
}

func NewService(store Store, summarizer Summarizer) *Service {
	return &Service{store: store, summarizer: summarizer, now: time.Now}
}

// Create summarizes the text and persists the result for members only.
// The summary is returned either way.
func (s *Service) Create(ctx context.Context, originalText string, userID *int64) (*Response, error) {
	if strings.TrimSpace(originalText) == "" {
		return nil, ErrEmptyInput
	}

	summaryText, err := s.summarizer.Summarize(ctx, originalText)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}

	resp := &Response{
		OriginalText: originalText,
		SummaryText:  summaryText,
		CreatedAt:    s.now(),
		UserID:       userID,
		IsSaved:      false,
	}

	if userID != nil {
		saved, err := s.store.Create(ctx, &Summary{
			UserID:       userID,
			OriginalText: originalText,
			SummaryText:  summaryText,
			CreatedAt:    resp.CreatedAt,
		})
		if err != nil {
			return nil, err
		}
		resp.ID = &saved.ID
		resp.IsSaved = true
	}

	return resp, nil
}

// Get returns the summary only to its owner.
func (s *Service) Get(ctx context.Context, id, userID int64) (*Summary, error) {
	sum, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sum.UserID == nil || *sum.UserID != userID {
		return nil, auth.ErrUnauthorized
	}
	return sum, nil
}

// Delete removes the summary only for its owner.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	sum, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sum.UserID == nil || *sum.UserID != userID {
		return auth.ErrUnauthorized
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Summary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListByUser(ctx, userID, limit, offset)
}
