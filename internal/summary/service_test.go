package summary

import (
	"context"
	"testing"
	"time"

	"github.com/Hanjarang/news/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	out string
	err error
}

func (s stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.out, s.err
}

func TestCreateForGuestIsNotPersisted(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store, stubSummarizer{out: "요약"})

	resp, err := svc.Create(context.Background(), "original text", nil)
	require.NoError(t, err)

	assert.Equal(t, "요약", resp.SummaryText)
	assert.False(t, resp.IsSaved)
	assert.Nil(t, resp.ID)

	listed, err := store.ListByUser(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateForMemberIsPersisted(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store, stubSummarizer{out: "요약"})
	userID := int64(7)

	resp, err := svc.Create(context.Background(), "original text", &userID)
	require.NoError(t, err)

	assert.True(t, resp.IsSaved)
	require.NotNil(t, resp.ID)

	stored, err := store.FindByID(context.Background(), *resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "original text", stored.OriginalText)
	assert.Equal(t, "요약", stored.SummaryText)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, userID, *stored.UserID)
}

func TestCreateRejectsEmptyText(t *testing.T) {
	svc := NewService(NewMemStore(), stubSummarizer{out: "x"})

	_, err := svc.Create(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestCreatePropagatesSummarizerFailure(t *testing.T) {
	svc := NewService(NewMemStore(), stubSummarizer{err: assert.AnError})

	_, err := svc.Create(context.Background(), "text", nil)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetEnforcesOwner(t *testing.T) {
	store := NewMemStore()
	owner := int64(1)
	saved, err := store.Create(context.Background(), &Summary{
		UserID:       &owner,
		OriginalText: "o",
		SummaryText:  "s",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)

	svc := NewService(store, stubSummarizer{})

	got, err := svc.Get(context.Background(), saved.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	_, err = svc.Get(context.Background(), saved.ID, 2)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = svc.Get(context.Background(), 999, owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEnforcesOwner(t *testing.T) {
	store := NewMemStore()
	owner := int64(1)
	saved, err := store.Create(context.Background(), &Summary{
		UserID:      &owner,
		SummaryText: "s",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)

	svc := NewService(store, stubSummarizer{})

	err = svc.Delete(context.Background(), saved.ID, 2)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	require.NoError(t, svc.Delete(context.Background(), saved.ID, owner))

	err = svc.Delete(context.Background(), saved.ID, owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByUserOrdersNewestFirst(t *testing.T) {
	store := NewMemStore()
	owner := int64(1)
	other := int64(2)
	base := time.Now()

	for i := 0; i < 3; i++ {
		_, err := store.Create(context.Background(), &Summary{
			UserID:      &owner,
			SummaryText: "s",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := store.Create(context.Background(), &Summary{
		UserID:      &other,
		SummaryText: "s",
		CreatedAt:   base,
	})
	require.NoError(t, err)

	svc := NewService(store, stubSummarizer{})

	listed, err := svc.ListByUser(context.Background(), owner, 2, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].CreatedAt.After(listed[1].CreatedAt))

	rest, err := svc.ListByUser(context.Background(), owner, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
