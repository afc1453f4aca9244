package ranking

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/anagnostou/marketscope/internal/modules/analysis"
)

// Handlers provides HTTP handlers for the ranking module
type Handlers struct {
	analysisService *analysis.Service
	rankingService  *Service
	log             zerolog.Logger
}

// NewHandlers creates a new ranking handlers instance
func NewHandlers(analysisService *analysis.Service, rankingService *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		analysisService: analysisService,
		rankingService:  rankingService,
		log:             log.With().Str("module", "ranking_handlers").Logger(),
	}
}

// RankRequest carries an optional weighting profile. An omitted or zero
// profile falls back to the default.
type RankRequest struct {
	Profile Profile `json:"profile"`
}

// HandleRank handles POST /api/ranking/rank
// Ranks the latest stored analysis of every ticker by profile score
func (h *Handlers) HandleRank(w http.ResponseWriter, r *http.Request) {
	profile := DefaultProfile()
	if r.Body != nil && r.ContentLength != 0 {
		var req RankRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.log.Error().Err(err).Msg("Failed to decode rank request")
			h.writeError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !req.Profile.IsZero() {
			profile = req.Profile
		}
	}

	records, err := h.analysisService.ListLatest()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load analyses for ranking")
		h.writeError(w, "Failed to load analyses", http.StatusInternalServerError)
		return
	}

	result, err := h.rankingService.Rank(records, profile)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode ranking response")
	}
}

// RegisterRoutes registers all ranking routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/ranking", func(r chi.Router) {
		r.Post("/rank", h.HandleRank)
	})
}

func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
