package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkapoor/tradeo/internal/cache"
	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/models"
)

// mockMetricsSource counts fetches and returns a canned reply or error.
type mockMetricsSource struct {
	reply      string
	err        error
	fetchCalls int
	lastTicker string
	lastLocale models.MarketLocale
}

func (m *mockMetricsSource) FetchMetricsText(_ context.Context, ticker string, locale models.MarketLocale) (string, error) {
	m.fetchCalls++
	m.lastTicker = ticker
	m.lastLocale = locale
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockMetricsSource) FetchAnalysis(_ context.Context, ticker string) (string, error) {
	return m.reply, m.err
}

func newTestService(source *mockMetricsSource) *Service {
	svc := NewService(source, cache.New[CachedAnalysis](0), common.NewSilentLogger())
	return svc
}

func TestAnalyzeExtractsMetrics(t *testing.T) {
	source := &mockMetricsSource{
		reply: "Current Price: $172.35\nTarget Price: $195.00\nPE Ratio: 28.5\nPrice Change: +3.2%",
	}
	svc := newTestService(source)

	result, err := svc.Analyze(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Ticker)
	assert.InDelta(t, 172.35, result.Metrics.CurrentPrice, 0.001)
	assert.InDelta(t, 195.00, result.Metrics.TargetPrice, 0.001)
	assert.InDelta(t, 28.5, result.Metrics.PERatio, 0.001)
	assert.InDelta(t, 3.2, result.Metrics.PriceChangePct, 0.001)
	assert.False(t, result.Metrics.IsIndianMarket)
	assert.False(t, result.FromCache)
	require.Len(t, result.Snippets, 1)
	assert.Equal(t, "AAPL", source.lastTicker)
	assert.Equal(t, models.LocaleDomestic, source.lastLocale)
}

func TestAnalyzeIndianLocalePassedToSource(t *testing.T) {
	source := &mockMetricsSource{reply: "Current Price: ₹ 2450.75"}
	svc := newTestService(source)

	result, err := svc.Analyze(context.Background(), "RELIANCE")
	require.NoError(t, err)

	assert.Equal(t, models.LocaleIndian, source.lastLocale)
	assert.True(t, result.Metrics.IsIndianMarket)
	assert.InDelta(t, 2450.75, result.Metrics.CurrentPrice, 0.001)
}

func TestAnalyzeInvalidTickerSkipsSource(t *testing.T) {
	source := &mockMetricsSource{reply: "Current Price: $10.00"}
	svc := newTestService(source)

	_, err := svc.Analyze(context.Background(), "ap l!")
	require.Error(t, err)

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, models.ValidationRuleCharacter, verr.Rule)
	assert.Zero(t, source.fetchCalls, "invalid ticker must never reach the source")
}

func TestAnalyzeCacheWithinHour(t *testing.T) {
	source := &mockMetricsSource{reply: "Current Price: $50.00"}
	svc := newTestService(source)

	base := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	first, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	// Later the same hour: must be served from cache, no second fetch.
	svc.now = func() time.Time { return base.Add(40 * time.Minute) }
	second, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.True(t, second.FromCache)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, 1, source.fetchCalls)
}

func TestAnalyzeCacheExpiresNextHour(t *testing.T) {
	source := &mockMetricsSource{reply: "Current Price: $50.00"}
	svc := newTestService(source)

	base := time.Date(2026, 8, 30, 14, 55, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	_, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	result, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.False(t, result.FromCache)
	assert.Equal(t, 2, source.fetchCalls)
}

func TestAnalyzeDistinctTickersCachedSeparately(t *testing.T) {
	source := &mockMetricsSource{reply: "Current Price: $50.00"}
	svc := newTestService(source)

	_, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, 2, source.fetchCalls)
}

func TestAnalyzeFetchFailureDegrades(t *testing.T) {
	source := &mockMetricsSource{
		err: &models.UpstreamError{Kind: models.UpstreamStatus, StatusCode: 503},
	}
	svc := newTestService(source)

	result, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err, "upstream failure must not surface as an error")

	assert.Equal(t, models.StockMetrics{}, result.Metrics)
	assert.Empty(t, result.Snippets)
	assert.False(t, result.FromCache)

	// Degraded results are not cached: the next request retries upstream.
	source.err = nil
	source.reply = "Current Price: $50.00"
	retry, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.InDelta(t, 50.0, retry.Metrics.CurrentPrice, 0.001)
	assert.Equal(t, 2, source.fetchCalls)
}

func TestAnalyzeNilSource(t *testing.T) {
	svc := NewService(nil, nil, common.NewSilentLogger())

	result, err := svc.Analyze(context.Background(), "RELIANCE")
	require.NoError(t, err)

	assert.True(t, result.Metrics.IsIndianMarket)
	assert.Zero(t, result.Metrics.CurrentPrice)
}

func TestClearCache(t *testing.T) {
	source := &mockMetricsSource{reply: "Current Price: $50.00"}
	svc := newTestService(source)

	_, err := svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)

	svc.ClearCache()

	_, err = svc.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetchCalls)
}

func TestCacheKeyFormat(t *testing.T) {
	at := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "stock_data_AAPL_2026-08-30-09", cacheKey("AAPL", at))
}
