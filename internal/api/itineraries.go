package api

import (
	"net/http"
	"time"

	"tripweaver/internal/trip"
)

const itineraryNotFoundMsg = "itinerary not found or unauthorized"

// itineraryRequest is the body of create and update.
type itineraryRequest struct {
	DestinationCity  string `json:"destination_city"`
	DestinationState string `json:"destination_state"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
}

// parse validates the body and returns the plan fields. Missing fields,
// unparseable dates, and inverted date ranges all map to a 400.
func (req itineraryRequest) parse() (trip.Itinerary, string) {
	if req.DestinationCity == "" || req.DestinationState == "" || req.StartDate == "" || req.EndDate == "" {
		return trip.Itinerary{}, "all fields are required"
	}

	start, err := time.Parse(trip.DateFormat, req.StartDate)
	if err != nil {
		return trip.Itinerary{}, "invalid date format"
	}
	end, err := time.Parse(trip.DateFormat, req.EndDate)
	if err != nil {
		return trip.Itinerary{}, "invalid date format"
	}

	if err := trip.ValidateDateRange(start, end); err != nil {
		return trip.Itinerary{}, "start date must be before end date"
	}

	return trip.Itinerary{
		DestinationCity:  req.DestinationCity,
		DestinationState: req.DestinationState,
		StartDate:        start,
		EndDate:          end,
	}, ""
}

// CreateItinerary handles POST /api/v1/itineraries.
func (h *Handlers) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	var req itineraryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	plan, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	plan.UserID = uid

	id, err := h.itineraries.Create(r.Context(), plan)
	if err != nil {
		h.log.Error("itinerary create failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create itinerary")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "itinerary created successfully",
	})
}

// ListItineraries handles GET /api/v1/itineraries.
func (h *Handlers) ListItineraries(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	plans, err := h.itineraries.ListByUser(r.Context(), uid)
	if err != nil {
		h.log.Error("itinerary list failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve itineraries")
		return
	}
	if plans == nil {
		plans = []trip.Itinerary{}
	}

	writeJSON(w, http.StatusOK, plans)
}

// loadOwnedPlan resolves the {id} parameter against the caller's ownership.
// It writes the response on failure and returns nil. An absent plan and an
// unowned plan are reported identically.
func (h *Handlers) loadOwnedPlan(w http.ResponseWriter, r *http.Request) *trip.Itinerary {
	planID, ok := pathID(w, r, "id")
	if !ok {
		return nil
	}
	uid := userID(r.Context())

	plan, err := h.itineraries.GetOwned(r.Context(), planID, uid)
	if err != nil {
		h.log.Error("itinerary lookup failed", "itinerary_id", planID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve itinerary")
		return nil
	}
	if plan == nil {
		writeError(w, http.StatusNotFound, itineraryNotFoundMsg)
		return nil
	}
	return plan
}

// GetItinerary handles GET /api/v1/itineraries/{id}: the plan with its
// items joined to attraction details, ordered by day then start time.
func (h *Handlers) GetItinerary(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}

	items, err := h.items.ListDetails(r.Context(), plan.ID)
	if err != nil {
		h.log.Error("item list failed", "itinerary_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve itinerary")
		return
	}
	if items == nil {
		items = []trip.ItemDetail{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"itinerary_id":      plan.ID,
		"user_id":           plan.UserID,
		"destination_city":  plan.DestinationCity,
		"destination_state": plan.DestinationState,
		"start_date":        plan.StartDate,
		"end_date":          plan.EndDate,
		"items":             items,
	})
}

// UpdateItinerary handles PUT /api/v1/itineraries/{id}.
func (h *Handlers) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	planID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	uid := userID(r.Context())

	var req itineraryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	plan, msg := req.parse()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	plan.ID = planID
	plan.UserID = uid

	updated, err := h.itineraries.Update(r.Context(), plan)
	if err != nil {
		h.log.Error("itinerary update failed", "itinerary_id", planID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update itinerary")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, itineraryNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "itinerary updated successfully"})
}

// DeleteItinerary handles DELETE /api/v1/itineraries/{id}. Items cascade.
func (h *Handlers) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	planID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	uid := userID(r.Context())

	deleted, err := h.itineraries.Delete(r.Context(), planID, uid)
	if err != nil {
		h.log.Error("itinerary delete failed", "itinerary_id", planID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete itinerary")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, itineraryNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "itinerary deleted successfully"})
}

// CloneItinerary handles POST /api/v1/itineraries/{id}/clone: a deep copy
// of the plan and all its items, owned by the caller.
func (h *Handlers) CloneItinerary(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}
	uid := userID(r.Context())

	newID, err := h.itineraries.Clone(r.Context(), plan, uid)
	if err != nil {
		h.log.Error("itinerary clone failed", "itinerary_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to clone itinerary")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      newID,
		"message": "itinerary cloned successfully",
	})
}

// ShareItinerary handles POST /api/v1/itineraries/{id}/share: a deep copy
// owned by the user resolved from the supplied email.
func (h *Handlers) ShareItinerary(w http.ResponseWriter, r *http.Request) {
	plan := h.loadOwnedPlan(w, r)
	if plan == nil {
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	target, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error("share target lookup failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to share itinerary")
		return
	}
	if target == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if _, err := h.itineraries.Clone(r.Context(), plan, target.ID); err != nil {
		h.log.Error("itinerary share failed", "itinerary_id", plan.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to share itinerary")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "itinerary shared successfully"})
}
