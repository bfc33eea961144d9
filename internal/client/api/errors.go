package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the session could not be established or
	// recovered; the caller must log in again.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries a non-2xx response the client could not translate into a
// sentinel.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}
