package api

import (
	"errors"
	"math"
	"net/http"

	"tripweaver/internal/auth"
	"tripweaver/internal/preference"
	"tripweaver/internal/storage"
)

// Register handles POST /api/v1/users. A new account starts with every
// preference weight at the documented default.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hash failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	id, err := h.users.Create(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		h.log.Error("user insert failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	token, err := h.tokens.Issue(id)
	if err != nil {
		h.log.Error("token issue failed", "user_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user_id": id,
		"name":    req.Name,
		"email":   req.Email,
		"token":   token,
	})
}

// Login handles POST /api/v1/users/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		h.log.Error("user lookup failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error("token issue failed", "user_id", user.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"token":   token,
	})
}

// GetProfile handles GET /api/v1/users/profile: account fields plus the
// full preference map.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	user, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		h.log.Error("profile lookup failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	profile, err := h.users.GetPreferences(r.Context(), uid)
	if err != nil {
		h.log.Error("preferences lookup failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":     user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"preferences": preferenceBody(profile),
	})
}

// UpdateProfile handles PUT /api/v1/users/profile.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" && req.Email == "" {
		writeError(w, http.StatusBadRequest, "no update data provided")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), uid, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already in use")
			return
		}
		h.log.Error("profile update failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "profile updated successfully"})
}

// GetPreferences handles GET /api/v1/users/preferences: the full weight map
// keyed by "<category>_pref".
func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	profile, err := h.users.GetPreferences(r.Context(), uid)
	if err != nil {
		h.log.Error("preferences lookup failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to retrieve preferences")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, preferenceBody(profile))
}

// UpdatePreferences handles PUT /api/v1/users/preferences. Unknown keys and
// out-of-range or non-integer values are silently discarded; the request
// fails with 400 only when nothing valid remains.
func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	var raw map[string]any
	if !decodeJSON(w, r, &raw) {
		return
	}

	candidates := make(map[string]int, len(raw))
	for key, v := range raw {
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			continue
		}
		candidates[key] = int(f)
	}

	weights := preference.Sanitize(candidates)
	if len(weights) == 0 {
		writeError(w, http.StatusBadRequest, "no valid preferences provided")
		return
	}

	updated, err := h.users.UpdatePreferences(r.Context(), uid, weights)
	if err != nil {
		h.log.Error("preferences update failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "preferences updated successfully"})
}

// ChangePassword handles PUT /api/v1/users/password.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "current password and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "new password must be at least 6 characters long")
		return
	}

	user, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		h.log.Error("user lookup failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		writeError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.log.Error("password hash failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	if _, err := h.users.UpdatePassword(r.Context(), uid, hash); err != nil {
		h.log.Error("password update failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated successfully"})
}

// DeleteAccount handles DELETE /api/v1/users/account. Itineraries and items
// cascade away with the account.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	uid := userID(r.Context())

	deleted, err := h.users.Delete(r.Context(), uid)
	if err != nil {
		h.log.Error("account delete failed", "user_id", uid, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete account")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted successfully"})
}

// preferenceBody renders a profile with wire keys ("park_pref", ...).
func preferenceBody(profile preference.Profile) map[string]int {
	body := make(map[string]int, len(profile))
	for c, weight := range profile {
		body[c.Column()] = weight
	}
	return body
}
