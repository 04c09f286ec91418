// Package report composes analysis, news, and LLM generation into the
// user-facing sentiment report.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/interfaces"
	"github.com/rkapoor/tradeo/internal/models"
	"github.com/rkapoor/tradeo/internal/services/analyzer"
)

// Service implements ReportService
type Service struct {
	analyzer interfaces.AnalyzerService
	news     interfaces.NewsSource
	llm      interfaces.LLMClient
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates a report service. news may be nil (report proceeds
// without a news digest); llm must be configured for report generation.
func NewService(
	analyzerService interfaces.AnalyzerService,
	news interfaces.NewsSource,
	llm interfaces.LLMClient,
	logger *common.Logger,
) *Service {
	return &Service{
		analyzer: analyzerService,
		news:     news,
		llm:      llm,
		logger:   logger,
		now:      time.Now,
	}
}

// GenerateReport runs the full pipeline for a raw ticker: analyze metrics,
// fetch and summarize news, prompt the LLM, and assemble the report.
//
// When metrics are unavailable the report degrades to a news-only
// narrative with explicit "market data unavailable" framing. Invalid
// tickers fail with *models.ValidationError before any upstream call.
func (s *Service) GenerateReport(ctx context.Context, rawTicker string) (*models.SentimentReport, error) {
	result, err := s.analyzer.Analyze(ctx, rawTicker)
	if err != nil {
		return nil, err
	}
	ticker := result.Ticker

	if s.llm == nil {
		return nil, fmt.Errorf("LLM client not configured")
	}

	s.logger.Info().Str("ticker", ticker).Bool("from_cache", result.FromCache).Msg("Generating sentiment report")

	var items []models.NewsItem
	if s.news != nil {
		items, err = s.news.SearchNews(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("News search failed (continuing without news)")
			items = nil
		}
	}

	newsSummary, references := analyzer.SummarizeNews(items, analyzer.DefaultMaxNewsItems)

	date := s.now().Format("2006-01-02")
	metrics := result.Metrics
	potential := PricePotential(metrics)
	degraded := !metrics.HasPrice()

	var prompt string
	if degraded {
		prompt = buildFallbackPrompt(ticker, date, newsSummary)
	} else {
		prompt = buildDetailedPrompt(ticker, date, metrics, newsSummary, potential)
	}

	markdown, err := s.llm.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate report for %s: %w", ticker, err)
	}

	report := &models.SentimentReport{
		ID:                uuid.NewString(),
		Ticker:            ticker,
		Markdown:          markdown,
		Metrics:           metrics,
		PricePotentialPct: potential,
		NewsSummary:       newsSummary,
		References:        references,
		Degraded:          degraded,
		GeneratedAt:       s.now(),
	}

	s.logger.Info().
		Str("ticker", ticker).
		Str("report_id", report.ID).
		Bool("degraded", degraded).
		Int("references", len(references)).
		Msg("Sentiment report generated")

	return report, nil
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
