package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rkapoor/tradeo/internal/cache"
	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/interfaces"
	"github.com/rkapoor/tradeo/internal/models"
)

// hourBucketFormat truncates wall-clock time to the hour, bounding cache
// staleness to at most one hour for a given ticker.
const hourBucketFormat = "2006-01-02-15"

// CachedAnalysis is the typed value stored in the response cache.
type CachedAnalysis struct {
	Metrics  models.StockMetrics
	Snippets []models.Snippet
}

// Service implements AnalyzerService: validate, check cache, classify
// locale, fetch upstream text, extract metrics, cache, return.
type Service struct {
	source interfaces.MetricsSource
	cache  *cache.Cache[CachedAnalysis]
	logger *common.Logger
	now    func() time.Time // injectable clock for testing

	// The cache has no internal synchronization; all access goes through
	// this mutex so concurrent HTTP handlers can't interleave the
	// evict-then-insert sequence.
	mu sync.Mutex
}

// NewService creates an analyzer service. source may be nil when the
// metrics API is not configured; analysis then degrades to empty metrics.
func NewService(source interfaces.MetricsSource, c *cache.Cache[CachedAnalysis], logger *common.Logger) *Service {
	if c == nil {
		c = cache.New[CachedAnalysis](0)
	}
	return &Service{
		source: source,
		cache:  c,
		logger: logger,
		now:    time.Now,
	}
}

// Analyze runs the full pipeline for a raw ticker string.
//
// Invalid tickers are rejected with *models.ValidationError before any
// cache or network activity. A cache hit for the current hour bucket
// short-circuits everything downstream. Upstream fetch failures are not
// propagated: the result carries empty-sentinel metrics and no snippets so
// the report layer can fall back to a news-only narrative.
func (s *Service) Analyze(ctx context.Context, rawTicker string) (*models.AnalysisResult, error) {
	ticker, err := ValidateTicker(rawTicker)
	if err != nil {
		return nil, err
	}

	key := cacheKey(ticker, s.now())

	s.mu.Lock()
	cached, hit := s.cache.Get(key)
	s.mu.Unlock()
	if hit {
		s.logger.Debug().Str("ticker", ticker).Str("key", key).Msg("Cache hit")
		return &models.AnalysisResult{
			Ticker:    ticker,
			Metrics:   cached.Metrics,
			Snippets:  cached.Snippets,
			FromCache: true,
		}, nil
	}

	locale := ClassifyMarket(ticker)
	metrics := models.StockMetrics{IsIndianMarket: locale == models.LocaleIndian}

	if s.source == nil {
		s.logger.Warn().Str("ticker", ticker).Msg("Metrics source not configured, returning empty metrics")
		return &models.AnalysisResult{Ticker: ticker, Metrics: metrics}, nil
	}

	text, fetchErr := s.source.FetchMetricsText(ctx, ticker, locale)
	if fetchErr != nil {
		// Degrade rather than propagate. The degraded result is not
		// cached so the next request retries upstream.
		s.logger.Warn().Err(fetchErr).Str("ticker", ticker).Msg("Metrics fetch failed, returning empty metrics")
		return &models.AnalysisResult{Ticker: ticker, Metrics: metrics}, nil
	}

	snippets := []models.Snippet{{Content: text, URL: "perplexity"}}
	metrics = ParseMetricsReply(text, locale)
	FillFromSnippets(snippets, &metrics)

	s.mu.Lock()
	s.cache.Set(key, CachedAnalysis{Metrics: metrics, Snippets: snippets})
	s.mu.Unlock()

	s.logger.Info().
		Str("ticker", ticker).
		Str("locale", string(locale)).
		Float64("price", metrics.CurrentPrice).
		Msg("Stock metrics extracted")

	return &models.AnalysisResult{Ticker: ticker, Metrics: metrics, Snippets: snippets}, nil
}

// ClearCache drops all cached analyses.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cache.Clear()
	s.mu.Unlock()
}

// cacheKey builds the hour-bucketed cache key for a normalized ticker.
func cacheKey(ticker string, t time.Time) string {
	return fmt.Sprintf("stock_data_%s_%s", ticker, t.Format(hourBucketFormat))
}

// Ensure Service implements AnalyzerService
var _ interfaces.AnalyzerService = (*Service)(nil)
