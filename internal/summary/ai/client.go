package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Hanjarang/news/internal/logger"
)

const (
	summarizeURL      = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	libreTranslateURL = "https://libretranslate.de/translate"
	myMemoryURL       = "https://api.mymemory.translated.net/get"

	// The inference endpoint rejects long inputs.
	maxInputLen = 1000
)

// Client proxies text through the Hugging Face summarization model and
// translates the English summary to Korean. Translation is best-effort:
// LibreTranslate first, MyMemory as fallback, English on total failure.
type Client struct {
	token string
	http  *http.Client

	summarizeURL      string
	libreTranslateURL string
	myMemoryURL       string
}

func New(token string) *Client {
	return &Client{
		token:             token,
		http:              &http.Client{Timeout: 30 * time.Second},
		summarizeURL:      summarizeURL,
		libreTranslateURL: libreTranslateURL,
		myMemoryURL:       myMemoryURL,
	}
}

// Summarize returns the Korean summary of the given English text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if len(text) > maxInputLen {
		text = text[:maxInputLen]
	}

	body, err := json.Marshal(map[string]any{"inputs": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.summarizeURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("summarization http %d", resp.StatusCode)
	}

	var result []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("summarization decode failed: %w", err)
	}
	if len(result) == 0 || result[0].SummaryText == "" {
		return "", errors.New("summarization response missing summary_text")
	}

	english := result[0].SummaryText
	return c.translateToKorean(ctx, english), nil
}

func (c *Client) translateToKorean(ctx context.Context, english string) string {
	korean, err := c.libreTranslate(ctx, english)
	if err == nil {
		return korean
	}
	logger.Warn("libretranslate failed, trying mymemory", map[string]any{
		"error": err.Error(),
	})

	korean, err = c.myMemoryTranslate(ctx, english)
	if err != nil {
		logger.Warn("translation failed, returning english summary", map[string]any{
			"error": err.Error(),
		})
		return english
	}
	return korean
}

func (c *Client) libreTranslate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "en",
		"target": "ko",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.libreTranslateURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("libretranslate http %d", resp.StatusCode)
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.TranslatedText == "" {
		return "", errors.New("libretranslate response missing translatedText")
	}
	return result.TranslatedText, nil
}

func (c *Client) myMemoryTranslate(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", "en|ko")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.myMemoryURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("mymemory http %d", resp.StatusCode)
	}

	var result struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.ResponseData.TranslatedText == "" {
		return "", errors.New("mymemory response missing translatedText")
	}
	return result.ResponseData.TranslatedText, nil
}
