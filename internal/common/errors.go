// Package common defines shared constants and sentinel errors used across
// client and server layers of WeNotes. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors. ErrInvalidCredentials deliberately covers both an unknown
	// username and a wrong password so the login path cannot be used to
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")

	// Token lifecycle errors. ErrInvalidOrExpiredToken covers a missing,
	// unknown, revoked, or expired refresh token.
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenExpired          = errors.New("token expired")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired refresh token")

	// Validation / policy errors.
	ErrValidation       = errors.New("validation failed")
	ErrNoteLimitReached = errors.New("note limit reached")
	ErrPremiumRequired  = errors.New("premium subscription required")
)
