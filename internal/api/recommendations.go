package api

import (
	"net/http"

	"tripweaver/internal/preference"
	"tripweaver/internal/recommend"
)

// GetRecommendations handles GET /api/v1/itineraries/{id}/recommendations:
// attractions at the plan's destination ranked by the owner's preference
// weights, rating as tie-break, capped at 30. A valid plan with no catalog
// matches gets an empty list, not an error.
func (h *Handlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}

	ranked, err := h.recommender.Recommend(r.Context(), plan, recommend.DefaultLimit)
	if err != nil {
		h.log.Error("recommendation failed", "itinerary_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to get recommendations")
		return
	}
	if ranked == nil {
		ranked = []preference.ScoredAttraction{}
	}

	writeJSON(w, http.StatusOK, ranked)
}
