package guardian

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"response": {
		"status": "ok",
		"total": 2,
		"results": [
			{
				"sectionName": "World news",
				"webPublicationDate": "2024-05-01T10:30:00Z",
				"webTitle": "Web title",
				"webUrl": "https://www.theguardian.com/world/1",
				"fields": {
					"headline": "Real headline",
					"standfirst": "Standfirst",
					"byline": "Jane Doe",
					"bodyText": "Full article body"
				},
				"tags": [
					{"type": "contributor", "webTitle": "Jane Doe"}
				]
			},
			{
				"webTitle": "Bare article",
				"webUrl": "https://www.theguardian.com/world/2"
			}
		]
	}
}`

func TestSearchByKeyword(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "climate", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api-key"))
		assert.Equal(t, "newest", r.URL.Query().Get("order-by"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "world")

	docs, err := c.SearchByKeyword(context.Background(), "climate")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	first := docs[0]
	assert.Equal(t, "Real headline", first.Title)
	assert.Equal(t, "Full article body", first.Content)
	assert.Equal(t, "Jane Doe", first.Author)
	assert.Equal(t, "The Guardian", first.Source)
	assert.Equal(t, "World news", first.Category)
	assert.Equal(t, "en", first.Language)
	assert.Equal(t, 2024, first.PublishedAt.Year())

	second := docs[1]
	assert.Equal(t, "Bare article", second.Title)
	assert.Equal(t, "Unknown", second.Author)
	assert.Equal(t, "General", second.Category)

	// Second identical lookup is served from the short-lived cache.
	_, err = c.SearchByKeyword(context.Background(), "climate")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSearchByPhraseQuotesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"climate change"`, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "world")

	_, err := c.SearchByPhrase(context.Background(), "climate change")
	require.NoError(t, err)
}

func TestLatestUsesSection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/world", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "world")

	docs, err := c.Latest(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestRandomByKeyword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "world")

	doc, err := c.RandomByKeyword(context.Background(), "climate")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, []string{"Real headline", "Bare article"}, doc.Title)
}

func TestRandomByKeywordNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": {"status": "ok", "total": 0, "results": []}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "world")

	doc, err := c.RandomByKeyword(context.Background(), "nohits")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "world")

	_, err := c.SearchByKeyword(context.Background(), "climate")
	assert.ErrorContains(t, err, "429")
}
