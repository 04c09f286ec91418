package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rkapoor/tradeo/internal/common"
	"github.com/rkapoor/tradeo/internal/models"
)

// handleHealth responds to GET/HEAD /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with build info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleAnalyze handles POST /api/analyze/{ticker} and returns a full
// sentiment report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	ticker := PathParam(r, "/api/analyze/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	report, err := s.app.ReportService.GenerateReport(r.Context(), ticker)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			WriteErrorWithCode(w, http.StatusBadRequest, verr.Reason, verr.Rule)
			return
		}
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Report generation failed")
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Report generation failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// handleMetrics handles GET /api/metrics/{ticker} and returns structured
// metrics without the generated report.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/metrics/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	result, err := s.app.AnalyzerService.Analyze(r.Context(), ticker)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			WriteErrorWithCode(w, http.StatusBadRequest, verr.Reason, verr.Rule)
			return
		}
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Analysis failed")
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
