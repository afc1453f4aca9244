// Package handlers provides HTTP handlers for the analysis module.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/anagnostou/marketscope/internal/modules/analysis"
	"github.com/anagnostou/marketscope/internal/modules/analysis/domain"
)

// Handlers provides HTTP handlers for scoring and retrieving analyses
type Handlers struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewHandlers creates a new analysis handlers instance
func NewHandlers(service *analysis.Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "analysis_handlers").Logger(),
	}
}

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleScore handles POST /api/analysis/score
// Scores a snapshot and, unless persist=false, stores the result
func (h *Handlers) HandleScore(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.MarketSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode snapshot")
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if snapshot.Ticker == "" {
		h.writeError(w, "Ticker is required", http.StatusBadRequest)
		return
	}

	persist := r.URL.Query().Get("persist") != "false"

	record, err := h.service.Score(snapshot, persist)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", snapshot.Ticker).Msg("Failed to score snapshot")
		h.writeError(w, "Failed to score snapshot", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, record)
}

// HandleList handles GET /api/analysis
// Returns the most recent stored analysis per ticker
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListLatest()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list analyses")
		h.writeError(w, "Failed to list analyses", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []analysis.Record{}
	}

	h.writeJSON(w, records)
}

// HandleGetByTicker handles GET /api/analysis/{ticker}
func (h *Handlers) HandleGetByTicker(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	record, err := h.service.Latest(ticker)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to get analysis")
		h.writeError(w, "Failed to get analysis", http.StatusInternalServerError)
		return
	}
	if record == nil {
		h.writeError(w, "No analysis for ticker", http.StatusNotFound)
		return
	}

	h.writeJSON(w, record)
}

// HandleHistory handles GET /api/analysis/{ticker}/history
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.service.History(ticker, limit)
	if err != nil {
		h.log.Error().Err(err).Str("ticker", ticker).Msg("Failed to get analysis history")
		h.writeError(w, "Failed to get analysis history", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []analysis.Record{}
	}

	h.writeJSON(w, records)
}

// HandleRescore handles POST /api/analysis/rescore
// Re-runs the engine over every stored snapshot
func (h *Handlers) HandleRescore(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.RescoreAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to rescore analyses")
		h.writeError(w, "Failed to rescore analyses", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]int{"rescored": count})
}

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
