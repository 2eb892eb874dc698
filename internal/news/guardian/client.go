package guardian

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Hanjarang/news/internal/logger"
	"github.com/Hanjarang/news/internal/news"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultPageSize = 20

	cacheTTL = 5 * time.Minute
)

// Client reads articles from the Guardian content API. Search responses
// are cached briefly, keyed by request URL, so repeated lookups for the
// same keyword do not burn through the API quota.
type Client struct {
	baseURL  string
	apiKey   string
	section  string
	pageSize int

	http  *http.Client
	cache *gocache.Cache
}

func New(baseURL, apiKey, section string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		section:  section,
		pageSize: defaultPageSize,
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    gocache.New(cacheTTL, time.Minute),
	}
}

func (c *Client) SearchByKeyword(ctx context.Context, keyword string) ([]news.Document, error) {
	return c.fetch(ctx, c.searchURL(keyword))
}

// SearchByPhrase quotes the query so the API runs an exact phrase search.
func (c *Client) SearchByPhrase(ctx context.Context, phrase string) ([]news.Document, error) {
	return c.fetch(ctx, c.searchURL(`"`+phrase+`"`))
}

func (c *Client) Latest(ctx context.Context) ([]news.Document, error) {
	return c.fetch(ctx, c.sectionURL(c.section))
}

func (c *Client) ByCategory(ctx context.Context, category string) ([]news.Document, error) {
	return c.fetch(ctx, c.sectionURL(category))
}

func (c *Client) RandomByKeyword(ctx context.Context, keyword string) (*news.Document, error) {
	return pickRandom(c.SearchByKeyword(ctx, keyword))
}

func (c *Client) RandomByPhrase(ctx context.Context, phrase string) (*news.Document, error) {
	return pickRandom(c.SearchByPhrase(ctx, phrase))
}

func (c *Client) RandomLatest(ctx context.Context) (*news.Document, error) {
	return pickRandom(c.Latest(ctx))
}

func (c *Client) RandomByCategory(ctx context.Context, category string) (*news.Document, error) {
	return pickRandom(c.ByCategory(ctx, category))
}

func pickRandom(docs []news.Document, err error) (*news.Document, error) {
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	doc := docs[rand.Intn(len(docs))]
	return &doc, nil
}

func (c *Client) searchURL(query string) string {
	q := url.Values{}
	q.Set("q", query)
	c.commonParams(q)
	return c.baseURL + "/search?" + q.Encode()
}

func (c *Client) sectionURL(section string) string {
	q := url.Values{}
	c.commonParams(q)
	return c.baseURL + "/" + url.PathEscape(section) + "?" + q.Encode()
}

func (c *Client) commonParams(q url.Values) {
	q.Set("api-key", c.apiKey)
	q.Set("page-size", strconv.Itoa(c.pageSize))
	q.Set("show-fields", "headline,standfirst,byline,bodyText,wordcount")
	q.Set("show-tags", "contributor")
	q.Set("order-by", "newest")
}

func (c *Client) fetch(ctx context.Context, reqURL string) ([]news.Document, error) {
	if cached, ok := c.cache.Get(reqURL); ok {
		docs, _ := cached.([]news.Document)
		return docs, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("guardian request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("guardian http %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("guardian decode failed: %w", err)
	}

	docs := make([]news.Document, 0, len(body.Response.Results))
	for _, article := range body.Response.Results {
		docs = append(docs, convert(article))
	}

	logger.Debug("guardian fetch", map[string]any{
		"results": len(docs),
	})

	c.cache.Set(reqURL, docs, cacheTTL)
	return docs, nil
}

type apiResponse struct {
	Response struct {
		Status  string    `json:"status"`
		Total   int       `json:"total"`
		Results []article `json:"results"`
	} `json:"response"`
}

type article struct {
	SectionName        string  `json:"sectionName"`
	WebPublicationDate string  `json:"webPublicationDate"`
	WebTitle           string  `json:"webTitle"`
	WebURL             string  `json:"webUrl"`
	Fields             *fields `json:"fields"`
	Tags               []tag   `json:"tags"`
}

type fields struct {
	Headline   string `json:"headline"`
	Standfirst string `json:"standfirst"`
	Byline     string `json:"byline"`
	BodyText   string `json:"bodyText"`
}

type tag struct {
	Type     string `json:"type"`
	WebTitle string `json:"webTitle"`
}

func convert(a article) news.Document {
	publishedAt := time.Now()
	if a.WebPublicationDate != "" {
		if t, err := time.Parse(time.RFC3339, a.WebPublicationDate); err == nil {
			publishedAt = t
		}
	}

	title := a.WebTitle
	content := ""
	author := "Unknown"

	if a.Fields != nil {
		if a.Fields.Headline != "" {
			title = a.Fields.Headline
		}
		if a.Fields.BodyText != "" {
			content = a.Fields.BodyText
		} else if a.Fields.Standfirst != "" {
			content = a.Fields.Standfirst
		}
		if a.Fields.Byline != "" {
			author = a.Fields.Byline
		}
	}

	for _, t := range a.Tags {
		if t.Type == "contributor" && t.WebTitle != "" {
			author = t.WebTitle
			break
		}
	}

	category := a.SectionName
	if category == "" {
		category = "General"
	}

	return news.Document{
		Title:       title,
		Content:     content,
		Source:      "The Guardian",
		URL:         a.WebURL,
		PublishedAt: publishedAt,
		Category:    category,
		Author:      author,
		Language:    "en",
	}
}
