package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/server/services"
)

// AuthHandler serves the session lifecycle endpoints: register, login,
// refresh, logout. It owns the refresh-cookie transport.
type AuthHandler struct {
	sessions        *services.SessionService
	refreshValidity time.Duration
	production      bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(sessions *services.SessionService, refreshValidity time.Duration, production bool) *AuthHandler {
	return &AuthHandler{
		sessions:        sessions,
		refreshValidity: refreshValidity,
		production:      production,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (h *AuthHandler) writeAuthResult(w http.ResponseWriter, status int, res *services.AuthResult) {
	setRefreshCookie(w, res.RefreshToken, h.refreshValidity, h.production)
	writeSuccess(w, status, authPayload{
		User:        toUserPayload(res.User),
		AccessToken: res.AccessToken,
	})
}

// Register creates an account and starts a session. 201 on success.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validateUsername(req.Username); err != nil {
		writeError(w, err)
		return
	}
	if err := validatePassword(req.Password); err != nil {
		writeError(w, err)
		return
	}
	role, err := validateRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	res, err := h.sessions.Register(r.Context(), req.Username, password, role)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeAuthResult(w, http.StatusCreated, res)
}

// Login verifies credentials and starts a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid json")
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	res, err := h.sessions.Login(r.Context(), req.Username, password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.writeAuthResult(w, http.StatusOK, res)
}

// Refresh redeems the cookie-borne refresh token for a new token pair. A
// failed redemption clears the cookie so the client stops replaying a token
// the server will never accept again.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(common.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		clearRefreshCookie(w, h.production)
		writeFailure(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := h.sessions.Refresh(r.Context(), cookie.Value)
	if err != nil {
		clearRefreshCookie(w, h.production)
		writeError(w, err)
		return
	}
	h.writeAuthResult(w, http.StatusOK, res)
}

// Logout revokes every active refresh token of the caller and clears the
// cookie. 204; idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())
	if caller == nil {
		writeFailure(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.sessions.LogoutAll(r.Context(), caller.UserID); err != nil {
		writeError(w, err)
		return
	}
	clearRefreshCookie(w, h.production)
	w.WriteHeader(http.StatusNoContent)
}
