package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/server/services"
)

// UserHandler serves profile updates and account deletion. Both routes sit
// behind the self-only guard, so the {id} parameter is already the caller's.
type UserHandler struct {
	users      *services.UserService
	production bool
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *services.UserService, production bool) *UserHandler {
	return &UserHandler{users: users, production: production}
}

type userUpdateRequest struct {
	Username        string `json:"username,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
}

type userDeleteRequest struct {
	CurrentPassword string `json:"currentPassword"`
}

// Update changes username and/or password. A password change requires the
// current password.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())

	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Username == "" && req.NewPassword == "" {
		writeFailure(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if req.Username != "" {
		if err := validateUsername(req.Username); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.NewPassword != "" {
		if err := validatePassword(req.NewPassword); err != nil {
			writeError(w, err)
			return
		}
		if req.CurrentPassword == "" {
			writeFailure(w, http.StatusBadRequest, "current password required")
			return
		}
	}

	newPassword := []byte(req.NewPassword)
	currentPassword := []byte(req.CurrentPassword)
	defer common.WipeByteArray(newPassword)
	defer common.WipeByteArray(currentPassword)

	updated, err := h.users.UpdateUser(r.Context(), services.UserUpdateInput{
		ID:              caller.UserID,
		Username:        req.Username,
		NewPassword:     newPassword,
		CurrentPassword: currentPassword,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toUserPayload(updated))
}

// Delete removes the caller's account together with notes and sessions. The
// cookie is cleared alongside; the revoked tokens would be useless anyway.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())

	var req userDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid json")
		return
	}

	currentPassword := []byte(req.CurrentPassword)
	defer common.WipeByteArray(currentPassword)

	if err := h.users.DeleteSelf(r.Context(), caller.UserID, currentPassword); err != nil {
		writeError(w, err)
		return
	}
	clearRefreshCookie(w, h.production)
	w.WriteHeader(http.StatusNoContent)
}
