package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Hanjarang/news/internal/news"

	"github.com/google/uuid"
)

const indexName = "news"

// Elastic stores documents in an Elasticsearch index over its REST API.
type Elastic struct {
	baseURL string
	http    *http.Client
}

func NewElastic(baseURL string) *Elastic {
	return &Elastic{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (e *Elastic) docURL(id string) string {
	return fmt.Sprintf("%s/%s/_doc/%s", e.baseURL, indexName, id)
}

func (e *Elastic) Save(ctx context.Context, doc news.Document) (news.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return news.Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, e.docURL(doc.ID), bytes.NewReader(body))
	if err != nil {
		return news.Document{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return news.Document{}, fmt.Errorf("elasticsearch index failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return news.Document{}, fmt.Errorf("elasticsearch index http %d", resp.StatusCode)
	}
	return doc, nil
}

func (e *Elastic) SaveAll(ctx context.Context, docs []news.Document) error {
	for _, doc := range docs {
		if _, err := e.Save(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

func (e *Elastic) Get(ctx context.Context, id string) (*news.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.docURL(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch get failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("elasticsearch get http %d", resp.StatusCode)
	}

	var body struct {
		ID     string        `json:"_id"`
		Source news.Document `json:"_source"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	doc := body.Source
	doc.ID = body.ID
	return &doc, nil
}

// Search runs a multi_match query against title and content.
func (e *Elastic) Search(ctx context.Context, query string) ([]news.Document, error) {
	return e.search(ctx, map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"title", "content"},
			},
		},
		"size": 50,
	})
}

func (e *Elastic) All(ctx context.Context) ([]news.Document, error) {
	return e.search(ctx, map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"size":  100,
	})
}

func (e *Elastic) search(ctx context.Context, queryBody map[string]any) ([]news.Document, error) {
	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/%s/_search", e.baseURL, indexName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("elasticsearch search http %d", resp.StatusCode)
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID     string        `json:"_id"`
				Source news.Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	docs := make([]news.Document, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		doc := hit.Source
		doc.ID = hit.ID
		docs = append(docs, doc)
	}
	return docs, nil
}

func (e *Elastic) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, e.docURL(id), nil)
	if err != nil {
		return err
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return fmt.Errorf("elasticsearch delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch delete http %d", resp.StatusCode)
	}
	return nil
}

func (e *Elastic) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL, nil)
	if err != nil {
		return err
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("elasticsearch ping http %d", resp.StatusCode)
	}
	return nil
}
