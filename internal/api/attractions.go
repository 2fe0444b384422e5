package api

import (
	"net/http"
)

// SearchAttractions handles GET /api/v1/attractions/search?city&state&orderBy.
// City/state matching is case-insensitive exact. Results come from the cache
// when present; cache failures degrade to the database, never to an error.
func (h *Handlers) SearchAttractions(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	state := r.URL.Query().Get("state")
	orderBy := r.URL.Query().Get("orderBy")

	if city == "" || state == "" {
		writeError(w, http.StatusBadRequest, "city and state are required")
		return
	}

	cached, err := h.cache.Get(r.Context(), city, state, orderBy)
	if err != nil {
		h.log.Error("search cache get failed", "city", city, "state", state, "err", err)
	}
	if cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	results, err := h.attractions.SearchByDestination(r.Context(), city, state, orderBy)
	if err != nil {
		h.log.Error("attraction search failed", "city", city, "state", state, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to search attractions")
		return
	}
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "no attractions found for the specified city and state")
		return
	}

	if err := h.cache.Set(r.Context(), city, state, orderBy, results); err != nil {
		h.log.Warn("search cache set failed", "city", city, "state", state, "err", err)
	}

	writeJSON(w, http.StatusOK, results)
}

// ValidateDestination handles GET /api/v1/attractions/validate?city&state.
func (h *Handlers) ValidateDestination(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	state := r.URL.Query().Get("state")

	if city == "" || state == "" {
		writeError(w, http.StatusBadRequest, "city and state are required")
		return
	}

	valid, err := h.attractions.DestinationExists(r.Context(), city, state)
	if err != nil {
		h.log.Error("destination validation failed", "city", city, "state", state, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to validate city/state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
