package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analysis routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/score", h.HandleScore)     // Score a snapshot
		r.Post("/rescore", h.HandleRescore) // Re-run engine over stored snapshots
		r.Get("/", h.HandleList)            // Latest analysis per ticker
		r.Route("/{ticker}", func(r chi.Router) {
			r.Get("/", h.HandleGetByTicker)
			r.Get("/history", h.HandleHistory)
		})
	})
}
