package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkapoor/tradeo/internal/app"
	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/models"
)

type stubAnalyzer struct {
	result *models.AnalysisResult
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string) (*models.AnalysisResult, error) {
	return s.result, s.err
}

type stubReporter struct {
	report *models.SentimentReport
	err    error
}

func (s *stubReporter) GenerateReport(_ context.Context, _ string) (*models.SentimentReport, error) {
	return s.report, s.err
}

func newTestServer(analyzer *stubAnalyzer, reporter *stubReporter) *Server {
	a := &app.App{
		Config:          common.NewDefaultConfig(),
		Logger:          common.NewSilentLogger(),
		AnalyzerService: analyzer,
		ReportService:   reporter,
		StartupTime:     time.Now(),
	}
	return NewServer(a)
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, &stubReporter{})

	rec := doRequest(t, s, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestVersionEndpoint(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, &stubReporter{})

	rec := doRequest(t, s, http.MethodGet, "/api/version")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	analyzer := &stubAnalyzer{result: &models.AnalysisResult{
		Ticker:  "AAPL",
		Metrics: models.StockMetrics{CurrentPrice: 172.35},
	}}
	s := newTestServer(analyzer, &stubReporter{})

	rec := doRequest(t, s, http.MethodGet, "/api/metrics/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "AAPL", result.Ticker)
	assert.InDelta(t, 172.35, result.Metrics.CurrentPrice, 0.001)
}

func TestMetricsEndpointValidationError(t *testing.T) {
	analyzer := &stubAnalyzer{err: &models.ValidationError{
		Rule:   models.ValidationRuleCharacter,
		Reason: "ticker contains invalid characters",
	}}
	s := newTestServer(analyzer, &stubReporter{})

	rec := doRequest(t, s, http.MethodGet, "/api/metrics/bad!ticker")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, models.ValidationRuleCharacter, body.Code)
}

func TestMetricsEndpointMissingTicker(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, &stubReporter{})

	rec := doRequest(t, s, http.MethodGet, "/api/metrics/")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpointMethodNotAllowed(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, &stubReporter{})

	rec := doRequest(t, s, http.MethodPost, "/api/metrics/AAPL")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	reporter := &stubReporter{report: &models.SentimentReport{
		ID:       "report-1",
		Ticker:   "AAPL",
		Markdown: "## Analysis",
	}}
	s := newTestServer(&stubAnalyzer{}, reporter)

	rec := doRequest(t, s, http.MethodPost, "/api/analyze/AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	var report models.SentimentReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, "AAPL", report.Ticker)
}

func TestAnalyzeEndpointUpstreamFailure(t *testing.T) {
	reporter := &stubReporter{err: &models.UpstreamError{Kind: models.UpstreamStatus, StatusCode: 503}}
	s := newTestServer(&stubAnalyzer{}, reporter)

	rec := doRequest(t, s, http.MethodPost, "/api/analyze/AAPL")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAnalyzeEndpointMethodNotAllowed(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, &stubReporter{})

	rec := doRequest(t, s, http.MethodGet, "/api/analyze/AAPL")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDPropagated(t *testing.T) {
	s := newTestServer(&stubAnalyzer{}, &stubReporter{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-ID"))
}
