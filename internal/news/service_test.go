package news

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	docs []Document
	err  error
}

func (f *fakeSource) SearchByKeyword(ctx context.Context, keyword string) ([]Document, error) {
	return f.docs, f.err
}

func (f *fakeSource) SearchByPhrase(ctx context.Context, phrase string) ([]Document, error) {
	return f.docs, f.err
}

func (f *fakeSource) RandomByKeyword(ctx context.Context, keyword string) (*Document, error) {
	return f.first()
}

func (f *fakeSource) RandomByPhrase(ctx context.Context, phrase string) (*Document, error) {
	return f.first()
}

func (f *fakeSource) RandomLatest(ctx context.Context) (*Document, error) {
	return f.first()
}

func (f *fakeSource) RandomByCategory(ctx context.Context, category string) (*Document, error) {
	return f.first()
}

func (f *fakeSource) first() (*Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.docs) == 0 {
		return nil, nil
	}
	doc := f.docs[0]
	return &doc, nil
}

type fakeIndex struct {
	docs    map[string]Document
	saveErr error
	nextID  int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[string]Document)}
}

func (f *fakeIndex) Save(ctx context.Context, doc Document) (Document, error) {
	if f.saveErr != nil {
		return Document{}, f.saveErr
	}
	if doc.ID == "" {
		f.nextID++
		doc.ID = "doc-" + strconv.Itoa(f.nextID)
	}
	f.docs[doc.ID] = doc
	return doc, nil
}

func (f *fakeIndex) SaveAll(ctx context.Context, docs []Document) error {
	for _, doc := range docs {
		if _, err := f.Save(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeIndex) Get(ctx context.Context, id string) (*Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (f *fakeIndex) Search(ctx context.Context, query string) ([]Document, error) {
	var out []Document
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeIndex) All(ctx context.Context) ([]Document, error) {
	return f.Search(ctx, "")
}

func (f *fakeIndex) Delete(ctx context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Ping(ctx context.Context) error { return nil }

func TestGetAndCacheByKeyword(t *testing.T) {
	source := &fakeSource{docs: []Document{{Title: "A", URL: "https://x/1"}}}
	idx := newFakeIndex()
	svc := NewService(source, idx)

	doc, err := svc.GetAndCacheByKeyword(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.ID)
	assert.Len(t, idx.docs, 1)
}

func TestGetAndCacheByKeywordNoMatch(t *testing.T) {
	svc := NewService(&fakeSource{}, newFakeIndex())

	doc, err := svc.GetAndCacheByKeyword(context.Background(), "nohits")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestGetAndCacheSurvivesIndexFailure(t *testing.T) {
	source := &fakeSource{docs: []Document{{Title: "A", URL: "https://x/1"}}}
	idx := newFakeIndex()
	idx.saveErr = errors.New("index down")
	svc := NewService(source, idx)

	doc, err := svc.GetAndCacheByKeyword(context.Background(), "a")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "A", doc.Title)
}

func TestCacheByKeyword(t *testing.T) {
	source := &fakeSource{docs: []Document{
		{ID: "1", Title: "A"},
		{ID: "2", Title: "B"},
	}}
	idx := newFakeIndex()
	svc := NewService(source, idx)

	n, err := svc.CacheByKeyword(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, idx.docs, 2)
}

func TestSearchAllSourcesMergesAndDedupes(t *testing.T) {
	source := &fakeSource{docs: []Document{
		{ID: "live-1", Title: "Live", URL: "https://x/1"},
		{ID: "live-2", Title: "Fresh", URL: "https://x/2"},
	}}
	idx := newFakeIndex()
	idx.docs["cached-1"] = Document{ID: "cached-1", Title: "Cached", URL: "https://x/1"}
	svc := NewService(source, idx)

	docs, err := svc.SearchAllSources(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	urls := map[string]bool{}
	for _, doc := range docs {
		urls[doc.URL] = true
	}
	assert.True(t, urls["https://x/1"])
	assert.True(t, urls["https://x/2"])
}

func TestSearchAllSourcesDegradesWhenUpstreamFails(t *testing.T) {
	source := &fakeSource{err: errors.New("guardian down")}
	idx := newFakeIndex()
	idx.docs["cached-1"] = Document{ID: "cached-1", Title: "Cached", URL: "https://x/1"}
	svc := NewService(source, idx)

	docs, err := svc.SearchAllSources(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Cached", docs[0].Title)
}

func TestSearchByCategory(t *testing.T) {
	idx := newFakeIndex()
	idx.docs["1"] = Document{ID: "1", Category: "World news"}
	idx.docs["2"] = Document{ID: "2", Category: "Sport"}
	svc := NewService(&fakeSource{}, idx)

	docs, err := svc.SearchByCategory(context.Background(), "world NEWS")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "1", docs[0].ID)
}

func TestCacheLatest(t *testing.T) {
	source := &fakeSource{docs: []Document{{ID: "1", Title: "Latest"}}}
	idx := newFakeIndex()
	svc := NewService(source, idx)

	require.NoError(t, svc.CacheLatest(context.Background()))
	assert.Len(t, idx.docs, 1)
}
