package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkapoor/tradeo/internal/models"
)

func TestSearchNews(t *testing.T) {
	var gotReq searchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]string{
				{"title": "First", "content": "alpha", "url": "https://example.com/1"},
				{"title": "Second", "content": "beta", "url": "https://example.com/2"},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithMaxResults(5), WithSearchDepth("basic"))

	items, err := client.SearchNews(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Contains(t, gotReq.Query, "AAPL stock news")
	assert.Equal(t, "basic", gotReq.SearchDepth)
	assert.Equal(t, 5, gotReq.MaxResults)

	// Order must match the response; citation numbering depends on it.
	require.Len(t, items, 2)
	assert.Equal(t, models.NewsItem{Title: "First", Content: "alpha", URL: "https://example.com/1"}, items[0])
	assert.Equal(t, models.NewsItem{Title: "Second", Content: "beta", URL: "https://example.com/2"}, items[1])
}

func TestSearchNewsEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	items, err := client.SearchNews(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchNewsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.SearchNews(context.Background(), "AAPL")
	require.Error(t, err)

	var uerr *models.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, models.UpstreamStatus, uerr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, uerr.StatusCode)
}

func TestSearchNewsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.SearchNews(context.Background(), "AAPL")
	require.Error(t, err)

	var uerr *models.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, models.UpstreamNetwork, uerr.Kind)
}
