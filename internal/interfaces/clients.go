// Package interfaces defines service and client contracts for Tradeo
package interfaces

import (
	"context"

	"github.com/rkapoor/tradeo/internal/models"
)

// MetricsSource fetches free-form text containing stock metric mentions
// for a validated ticker. Implementations return *models.UpstreamError
// for network, status, and malformed-response failures.
type MetricsSource interface {
	// FetchMetricsText asks the upstream for current price, target price,
	// PE ratio and recent price change in a structured text format.
	FetchMetricsText(ctx context.Context, ticker string, locale models.MarketLocale) (string, error)

	// FetchAnalysis asks the upstream for a comprehensive markdown analysis.
	FetchAnalysis(ctx context.Context, ticker string) (string, error)
}

// NewsSource returns recent news records for a ticker, ordered by relevance.
// An empty slice is a valid result.
type NewsSource interface {
	SearchNews(ctx context.Context, ticker string) ([]models.NewsItem, error)
}

// LLMClient generates text from a prompt.
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
