// Package httpapi exposes the server over HTTP: a chi router, JSON handlers,
// refresh-cookie transport, and the middleware chain (auth, rate limiting,
// logging, recovery).
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/wenotes/internal/common"
)

// envelope is the single response shape for every endpoint:
// {"success":true,"data":...} or {"success":false,"message":...}.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}

// writeError maps a service error onto a status/message pair. Ownership
// failures arrive as common.ErrorNotFound and stay 404; the response never
// distinguishes "someone else's" from "does not exist".
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrInvalidOrExpiredToken),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		writeFailure(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrUsernameTaken):
		writeFailure(w, http.StatusConflict, "username already taken")
	case errors.Is(err, common.ErrorNotFound):
		writeFailure(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrNoteLimitReached):
		writeFailure(w, http.StatusForbidden, "note limit reached, upgrade to premium")
	case errors.Is(err, common.ErrPremiumRequired):
		writeFailure(w, http.StatusForbidden, "premium required")
	case errors.Is(err, common.ErrValidation):
		writeFailure(w, http.StatusBadRequest, err.Error())
	default:
		writeFailure(w, http.StatusInternalServerError, "internal error")
	}
}
