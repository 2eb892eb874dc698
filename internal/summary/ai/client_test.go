package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(summarize, libre, mymemory string) *Client {
	return &Client{
		token:             "test-token",
		http:              &http.Client{Timeout: 5 * time.Second},
		summarizeURL:      summarize,
		libreTranslateURL: libre,
		myMemoryURL:       mymemory,
	}
}

func summarizeServer(t *testing.T, summary string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		require.NoError(t, json.Unmarshal(body, &req))
		assert.NotEmpty(t, req["inputs"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]string{{"summary_text": summary}})
	}))
}

func TestSummarizeTranslatesToKorean(t *testing.T) {
	sum := summarizeServer(t, "Short english summary.")
	defer sum.Close()

	libre := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "en", req["source"])
		assert.Equal(t, "ko", req["target"])

		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "짧은 한국어 요약."})
	}))
	defer libre.Close()

	c := testClient(sum.URL, libre.URL, "http://127.0.0.1:0")

	got, err := c.Summarize(context.Background(), "Some long english article text.")
	require.NoError(t, err)
	assert.Equal(t, "짧은 한국어 요약.", got)
}

func TestSummarizeFallsBackToMyMemory(t *testing.T) {
	sum := summarizeServer(t, "Short english summary.")
	defer sum.Close()

	libre := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer libre.Close()

	mymemory := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en|ko", r.URL.Query().Get("langpair"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responseData": map[string]string{"translatedText": "대체 한국어 요약."},
		})
	}))
	defer mymemory.Close()

	c := testClient(sum.URL, libre.URL, mymemory.URL)

	got, err := c.Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "대체 한국어 요약.", got)
}

func TestSummarizeReturnsEnglishWhenTranslationFails(t *testing.T) {
	sum := summarizeServer(t, "Short english summary.")
	defer sum.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	c := testClient(sum.URL, broken.URL, broken.URL)

	got, err := c.Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Short english summary.", got)
}

func TestSummarizeTruncatesLongInput(t *testing.T) {
	var gotInput string
	sum := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		gotInput = req["inputs"]

		_ = json.NewEncoder(w).Encode([]map[string]string{{"summary_text": "ok"}})
	}))
	defer sum.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	c := testClient(sum.URL, broken.URL, broken.URL)

	_, err := c.Summarize(context.Background(), strings.Repeat("a", 5000))
	require.NoError(t, err)
	assert.Len(t, gotInput, maxInputLen)
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	sum := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer sum.Close()

	c := testClient(sum.URL, sum.URL, sum.URL)

	_, err := c.Summarize(context.Background(), "text")
	assert.ErrorContains(t, err, "503")
}

func TestSummarizeEmptyResult(t *testing.T) {
	sum := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{})
	}))
	defer sum.Close()

	c := testClient(sum.URL, sum.URL, sum.URL)

	_, err := c.Summarize(context.Background(), "text")
	assert.Error(t, err)
}
