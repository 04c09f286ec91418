// Package app wires configuration, clients, and services together.
package app

import (
	"context"
	"os"
	"time"

	"github.com/rkapoor/tradeo/internal/cache"
	"github.com/rkapoor/tradeo/internal/clients/gemini"
	"github.com/rkapoor/tradeo/internal/clients/perplexity"
	"github.com/rkapoor/tradeo/internal/clients/tavily"
	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/interfaces"
	"github.com/rkapoor/tradeo/internal/services/analyzer"
	"github.com/rkapoor/tradeo/internal/services/report"

	"fmt"
)

// App holds all initialized clients and services. Missing API keys degrade
// the corresponding capability with a warning instead of failing startup.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	AnalyzerService interfaces.AnalyzerService
	ReportService   interfaces.ReportService
	StartupTime     time.Time
}

// NewApp initializes the application from a config path. An empty path
// falls back to TRADEO_CONFIG and then tradeo.toml in the working
// directory.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("TRADEO_CONFIG")
	}
	if configPath == "" {
		configPath = "tradeo.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	ctx := context.Background()

	// Resolve API keys
	perplexityKey, err := common.ResolveAPIKey("perplexity_api_key", config.Clients.Perplexity.APIKey)
	if err != nil {
		logger.Warn().Msg("Perplexity API key not configured - metrics extraction will be unavailable")
	}

	tavilyKey, err := common.ResolveAPIKey("tavily_api_key", config.Clients.Tavily.APIKey)
	if err != nil {
		logger.Warn().Msg("Tavily API key not configured - news search will be unavailable")
	}

	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - report generation will be unavailable")
	}

	// Initialize API clients
	var metricsSource interfaces.MetricsSource
	if perplexityKey != "" {
		metricsSource = perplexity.NewClient(perplexityKey,
			perplexity.WithLogger(logger),
			perplexity.WithBaseURL(config.Clients.Perplexity.BaseURL),
			perplexity.WithModel(config.Clients.Perplexity.Model),
			perplexity.WithRateLimit(config.Clients.Perplexity.RateLimit),
			perplexity.WithTimeout(config.Clients.Perplexity.GetTimeout()),
			perplexity.WithMaxRetries(config.Clients.Perplexity.MaxRetries),
		)
	}

	var newsSource interfaces.NewsSource
	if tavilyKey != "" {
		newsSource = tavily.NewClient(tavilyKey,
			tavily.WithLogger(logger),
			tavily.WithBaseURL(config.Clients.Tavily.BaseURL),
			tavily.WithMaxResults(config.Clients.Tavily.MaxResults),
			tavily.WithSearchDepth(config.Clients.Tavily.SearchDepth),
			tavily.WithTimeout(config.Clients.Tavily.GetTimeout()),
		)
	}

	var llmClient interfaces.LLMClient
	if geminiKey != "" {
		client, err := gemini.NewClient(ctx, geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			llmClient = client
		}
	}

	// Initialize services
	responseCache := cache.New[analyzer.CachedAnalysis](config.Cache.MaxEntries)
	analyzerService := analyzer.NewService(metricsSource, responseCache, logger)
	reportService := report.NewService(analyzerService, newsSource, llmClient, logger)

	a := &App{
		Config:          config,
		Logger:          logger,
		AnalyzerService: analyzerService,
		ReportService:   reportService,
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
