package session

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()
	now := time.Now()

	sess := Session{
		SessionID:  "s1",
		UserID:     42,
		Attributes: map[string]any{"sub": "g1"},
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	}
	require.NoError(t, store.Create(context.Background(), sess))

	got, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "g1", got.Attributes["sub"])
}

func TestMemStoreMissReturnsNil(t *testing.T) {
	store := NewMemStore()

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemStoreDropsExpired(t *testing.T) {
	store := NewMemStore()
	now := time.Now()

	require.NoError(t, store.Create(context.Background(), Session{
		SessionID: "old",
		UserID:    1,
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}))

	got, err := store.Get(context.Background(), "old")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemStoreDeleteIsIdempotent(t *testing.T) {
	store := NewMemStore()

	require.NoError(t, store.Create(context.Background(), Session{SessionID: "s1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Delete(context.Background(), "s1"))
	require.NoError(t, store.Delete(context.Background(), "s1"))

	got, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(id), 40)
		assert.False(t, seen[id], "ids must not repeat")
		seen[id] = true
	}
}

func TestSetCookieDefaults(t *testing.T) {
	w := httptest.NewRecorder()

	SetCookie(w, "abc", time.Now().Add(time.Hour), CookieOptions{})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
}

func TestSetCookieSecure(t *testing.T) {
	w := httptest.NewRecorder()

	SetCookie(w, "abc", time.Now().Add(time.Hour), CookieOptions{Secure: true})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestClearCookie(t *testing.T) {
	w := httptest.NewRecorder()

	ClearCookie(w, CookieOptions{})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
