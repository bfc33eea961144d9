package models

import "time"

// RefreshToken is a server-stored bearer credential redeemable exactly once.
// A token is active iff RevokedAt is nil and ExpiresAt is in the future.
// Rows are revoked, never deleted, so redemption of an already-rotated token
// is distinguishable from a token that never existed.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Active reports whether the token can still be redeemed at instant now.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
