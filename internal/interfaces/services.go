package interfaces

import (
	"context"

	"github.com/rkapoor/tradeo/internal/models"
)

// AnalyzerService turns a raw ticker string into structured stock metrics.
type AnalyzerService interface {
	// Analyze validates the ticker, consults the hour-bucketed response
	// cache, and on a miss fetches and parses upstream text. The only
	// error returned is *models.ValidationError; upstream failures degrade
	// to an empty-metrics result.
	Analyze(ctx context.Context, rawTicker string) (*models.AnalysisResult, error)
}

// ReportService produces the user-facing sentiment report for a ticker.
type ReportService interface {
	GenerateReport(ctx context.Context, rawTicker string) (*models.SentimentReport, error)
}
