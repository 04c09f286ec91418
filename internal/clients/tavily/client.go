// Package tavily provides a client for the Tavily search API
package tavily

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/interfaces"
	"github.com/rkapoor/tradeo/internal/models"
)

const (
	DefaultBaseURL     = "https://api.tavily.com"
	DefaultMaxResults  = 10
	DefaultSearchDepth = "advanced"
	DefaultTimeout     = 30 * time.Second
)

// Client implements the NewsSource interface over Tavily's search endpoint.
type Client struct {
	rest        *resty.Client
	maxResults  int
	searchDepth string
	logger      *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.rest.SetBaseURL(baseURL)
	}
}

// WithMaxResults sets the maximum number of search results requested
func WithMaxResults(maxResults int) ClientOption {
	return func(c *Client) {
		c.maxResults = maxResults
	}
}

// WithSearchDepth sets the search depth ("basic" or "advanced")
func WithSearchDepth(depth string) ClientOption {
	return func(c *Client) {
		c.searchDepth = depth
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.rest.SetTimeout(timeout)
	}
}

// NewClient creates a new Tavily client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	rest := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(DefaultTimeout)

	c := &Client{
		rest:        rest,
		maxResults:  DefaultMaxResults,
		searchDepth: DefaultSearchDepth,
		logger:      common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type searchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// SearchNews queries Tavily for recent news about a ticker. Results come
// back in Tavily's relevance order, which downstream citation numbering
// depends on.
func (c *Client) SearchNews(ctx context.Context, ticker string) ([]models.NewsItem, error) {
	query := fmt.Sprintf("%s stock news financial analysis earnings recent developments", ticker)

	c.logger.Debug().Str("ticker", ticker).Str("query", query).Msg("Searching news")

	var result searchResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(searchRequest{
			Query:       query,
			SearchDepth: c.searchDepth,
			MaxResults:  c.maxResults,
		}).
		SetResult(&result).
		Post("/search")
	if err != nil {
		return nil, &models.UpstreamError{Kind: models.UpstreamNetwork, Err: err}
	}

	if resp.StatusCode() != 200 {
		c.logger.Warn().Int("status", resp.StatusCode()).Str("ticker", ticker).Msg("Tavily search failed")
		return nil, &models.UpstreamError{Kind: models.UpstreamStatus, StatusCode: resp.StatusCode()}
	}

	items := make([]models.NewsItem, 0, len(result.Results))
	for _, r := range result.Results {
		items = append(items, models.NewsItem{
			Title:   r.Title,
			Content: r.Content,
			URL:     r.URL,
		})
	}

	c.logger.Debug().Str("ticker", ticker).Int("results", len(items)).Msg("News search complete")

	return items, nil
}

// Ensure Client implements NewsSource
var _ interfaces.NewsSource = (*Client)(nil)
