// Package perplexity provides a client for the Perplexity chat completions API
package perplexity

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/interfaces"
	"github.com/rkapoor/tradeo/internal/models"
)

const (
	DefaultBaseURL    = "https://api.perplexity.ai"
	DefaultModel      = "sonar"
	DefaultTimeout    = 30 * time.Second
	DefaultRateLimit  = 2 // requests per second
	DefaultMaxRetries = 3
)

// Client implements the MetricsSource interface over Perplexity's
// chat completions endpoint.
type Client struct {
	rest    *resty.Client
	model   string
	logger  *common.Logger
	limiter *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.rest.SetBaseURL(baseURL)
	}
}

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.rest.SetTimeout(timeout)
	}
}

// WithMaxRetries sets how many times a failed request is retried with
// exponential backoff before the error is surfaced.
func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) {
		c.rest.SetRetryCount(retries)
	}
}

// NewClient creates a new Perplexity client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	rest := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(DefaultTimeout).
		SetRetryCount(DefaultMaxRetries).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second)

	c := &Client{
		rest:    rest,
		model:   DefaultModel,
		logger:  common.NewSilentLogger(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatCompletion sends a system+user message pair and returns the
// assistant's text. Failures map onto models.UpstreamError kinds.
func (c *Client) chatCompletion(ctx context.Context, system, user string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &models.UpstreamError{Kind: models.UpstreamNetwork, Err: err}
	}

	var result chatResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
		}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", &models.UpstreamError{Kind: models.UpstreamNetwork, Err: err}
	}

	if resp.StatusCode() != 200 {
		c.logger.Warn().Int("status", resp.StatusCode()).Msg("Perplexity request failed")
		return "", &models.UpstreamError{Kind: models.UpstreamStatus, StatusCode: resp.StatusCode()}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", &models.UpstreamError{Kind: models.UpstreamMalformed, Err: fmt.Errorf("no choices in response")}
	}

	return result.Choices[0].Message.Content, nil
}

// FetchMetricsText asks for the current price, target price, PE ratio and
// recent price change of a ticker in a structured text format, with the
// currency symbol matching the ticker's market locale.
func (c *Client) FetchMetricsText(ctx context.Context, ticker string, locale models.MarketLocale) (string, error) {
	c.logger.Debug().Str("ticker", ticker).Str("locale", string(locale)).Msg("Fetching stock metrics")

	market := "US/International"
	if locale == models.LocaleIndian {
		market = "India"
	}

	system := fmt.Sprintf(
		"You are a precise financial data assistant. Extract exact stock metrics from reliable financial sources. "+
			"For Indian stocks, use ₹ (INR), for US/international stocks use $ (USD). "+
			"Always format percentages with %% symbol. Be accurate and concise. "+
			"This stock is from the %s market.", market)

	user := buildMetricsQuery(ticker, locale)

	return c.chatCompletion(ctx, system, user)
}

// FetchAnalysis asks for a comprehensive markdown analysis of a ticker.
func (c *Client) FetchAnalysis(ctx context.Context, ticker string) (string, error) {
	c.logger.Debug().Str("ticker", ticker).Msg("Fetching comprehensive analysis")

	system := "You are an expert financial analyst specializing in comprehensive stock analysis. " +
		"Provide detailed, accurate, and actionable investment analysis using real-time financial data " +
		"from reliable sources like Yahoo Finance, Bloomberg, MarketWatch, or Google Finance. " +
		"Format your response with clear markdown headers and bullet points."

	user := fmt.Sprintf(`Provide a comprehensive stock analysis for %s including:

1. Recent news and developments (last 7 days)
2. Earnings and financial performance
3. Technical analysis and price trends
4. Risk factors and market sentiment
5. Investment recommendation with reasoning

Include specific data points, percentages, and cite reliable financial sources.`, ticker)

	return c.chatCompletion(ctx, system, user)
}

// buildMetricsQuery constructs the structured-format metrics prompt.
func buildMetricsQuery(ticker string, locale models.MarketLocale) string {
	symbol := locale.CurrencySymbol()
	return fmt.Sprintf(`Get the exact current stock price, target price, PE ratio, and recent price change percentage for %s.

Provide the information in this exact format:
Current Price: %sX.XX
Target Price: %sX.XX (or N/A if not available)
PE Ratio: X.XX (or N/A if not available)
Price Change: +/-X.XX%%

IMPORTANT:
- If this is an Indian stock (like RELIANCE, TCS, INFY, HDFCBANK, etc.), show prices in Indian Rupees (₹)
- If this is a US/international stock, show prices in US Dollars ($)
- Source data from reliable financial sources like Yahoo Finance, Bloomberg, MarketWatch, Google Finance, or Moneycontrol for Indian stocks
- Be precise with the numbers and include the correct currency symbol`, ticker, symbol, symbol)
}

// Ensure Client implements MetricsSource
var _ interfaces.MetricsSource = (*Client)(nil)
