package news

import (
	"context"
	"strings"

	"github.com/Hanjarang/news/internal/logger"
)

// Service combines the upstream news source with the search index:
// fetch, cache, and serve from either side.
type Service struct {
	source Source
	index  Index
}

func NewService(source Source, index Index) *Service {
	return &Service{source: source, index: index}
}

// GetAndCacheByKeyword pulls one random article for the keyword from the
// upstream API, stores it in the index and returns it. Nil when the
// keyword matches nothing.
func (s *Service) GetAndCacheByKeyword(ctx context.Context, keyword string) (*Document, error) {
	doc, err := s.source.RandomByKeyword(ctx, keyword)
	if err != nil || doc == nil {
		return nil, err
	}

	saved, err := s.index.Save(ctx, *doc)
	if err != nil {
		// The article is still useful even when indexing fails.
		logger.Warn("failed to index article", map[string]any{"error": err.Error()})
		return doc, nil
	}
	return &saved, nil
}

// CacheByKeyword fetches every match for the keyword and stores them all.
func (s *Service) CacheByKeyword(ctx context.Context, keyword string) (int, error) {
	docs, err := s.source.SearchByKeyword(ctx, keyword)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	if err := s.index.SaveAll(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *Service) SearchCached(ctx context.Context, keyword string) ([]Document, error) {
	return s.index.Search(ctx, keyword)
}

// SearchAllSources merges index hits with live upstream results.
func (s *Service) SearchAllSources(ctx context.Context, keyword string) ([]Document, error) {
	cached, err := s.index.Search(ctx, keyword)
	if err != nil {
		logger.Warn("index search failed", map[string]any{"error": err.Error()})
		cached = nil
	}

	live, err := s.source.SearchByKeyword(ctx, keyword)
	if err != nil {
		logger.Warn("upstream search failed", map[string]any{"error": err.Error()})
		live = nil
	}

	seen := make(map[string]bool, len(cached))
	merged := make([]Document, 0, len(cached)+len(live))
	for _, doc := range cached {
		seen[doc.URL] = true
		merged = append(merged, doc)
	}
	for _, doc := range live {
		if !seen[doc.URL] {
			merged = append(merged, doc)
		}
	}
	return merged, nil
}

// SearchByCategory filters the indexed documents by category.
func (s *Service) SearchByCategory(ctx context.Context, category string) ([]Document, error) {
	all, err := s.index.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []Document
	for _, doc := range all {
		if strings.EqualFold(doc.Category, category) {
			out = append(out, doc)
		}
	}
	return out, nil
}

// CacheLatest stores one random article from the newest upstream batch.
func (s *Service) CacheLatest(ctx context.Context) error {
	doc, err := s.source.RandomLatest(ctx)
	if err != nil || doc == nil {
		return err
	}
	_, err = s.index.Save(ctx, *doc)
	return err
}

func (s *Service) GetAndCacheByPhrase(ctx context.Context, phrase string) (*Document, error) {
	doc, err := s.source.RandomByPhrase(ctx, phrase)
	if err != nil || doc == nil {
		return nil, err
	}

	saved, err := s.index.Save(ctx, *doc)
	if err != nil {
		logger.Warn("failed to index article", map[string]any{"error": err.Error()})
		return doc, nil
	}
	return &saved, nil
}

func (s *Service) CacheByPhrase(ctx context.Context, phrase string) (int, error) {
	docs, err := s.source.SearchByPhrase(ctx, phrase)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	if err := s.index.SaveAll(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}
