package api

import (
	"net/http"

	"tripweaver/internal/trip"
)

// AddItem handles POST /api/v1/itineraries/{id}/items. Day, times, and
// notes are optional; an item may exist unscheduled. The attraction must
// exist in the catalog at insertion time.
func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}

	var req struct {
		AttractionID int64   `json:"attraction_id"`
		DayNumber    *int    `json:"day_number"`
		StartTime    *string `json:"start_time"`
		EndTime      *string `json:"end_time"`
		Notes        *string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AttractionID == 0 {
		writeError(w, http.StatusBadRequest, "attraction ID is required")
		return
	}

	attraction, err := h.attractions.GetByID(r.Context(), req.AttractionID)
	if err != nil {
		h.log.Error("attraction lookup failed", "attraction_id", req.AttractionID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to add itinerary item")
		return
	}
	if attraction == nil {
		writeError(w, http.StatusNotFound, "attraction not found")
		return
	}

	id, err := h.items.Add(r.Context(), trip.Item{
		ItineraryID:  plan.ID,
		AttractionID: req.AttractionID,
		DayNumber:    req.DayNumber,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Notes:        req.Notes,
	})
	if err != nil {
		h.log.Error("item insert failed", "itinerary_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to add itinerary item")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "itinerary item added successfully",
	})
}

// UpdateItem handles PUT /api/v1/itineraries/{id}/items/{itemId}. Zero rows
// affected means the item does not belong to this plan.
func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	var req struct {
		DayNumber *int    `json:"day_number"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		Notes     *string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.items.Update(r.Context(), plan.ID, itemID, req.DayNumber, req.StartTime, req.EndTime, req.Notes)
	if err != nil {
		h.log.Error("item update failed", "itinerary_id", plan.ID, "item_id", itemID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update itinerary item")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "itinerary item not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "itinerary item updated successfully"})
}

// DeleteItem handles DELETE /api/v1/itineraries/{id}/items with the item id
// in the body.
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}

	var req struct {
		ItemID int64 `json:"item_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ItemID == 0 {
		writeError(w, http.StatusBadRequest, "item ID is required")
		return
	}

	deleted, err := h.items.Delete(r.Context(), plan.ID, req.ItemID)
	if err != nil {
		h.log.Error("item delete failed", "itinerary_id", plan.ID, "item_id", req.ItemID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete itinerary item")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "item not found or already deleted")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "itinerary item deleted successfully"})
}

// ListItineraryAttractions handles GET /api/v1/itineraries/{id}/attractions.
func (h *Handlers) ListItineraryAttractions(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}

	attractions, err := h.items.ListAttractions(r.Context(), plan.ID)
	if err != nil {
		h.log.Error("itinerary attraction list failed", "itinerary_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve itinerary attractions")
		return
	}
	if attractions == nil {
		attractions = []trip.ItineraryAttraction{}
	}

	writeJSON(w, http.StatusOK, attractions)
}

// ReorderItems handles PUT /api/v1/itineraries/{id}/reorder. The batch is
// applied in one transaction; either every placement lands or none do.
func (h *Handlers) ReorderItems(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}

	var req struct {
		Items []trip.ItemPlacement `json:"items"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items array is required")
		return
	}

	if err := h.items.Reorder(r.Context(), plan.ID, req.Items); err != nil {
		h.log.Error("item reorder failed", "itinerary_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to reorder itinerary items")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "itinerary items reordered successfully"})
}
