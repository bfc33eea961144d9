// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wenotes/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh
// tokens. Revocation is a single atomic write; rows are never deleted in the
// request path.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string regardless of
	// state, so callers can tell a replayed (revoked) token apart from one
	// that never existed. Returns common.ErrorNotFound when absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Revoke marks the token revoked if and only if it is not revoked yet,
	// and reports whether this call performed the revocation. The
	// compare-and-revoke semantics make concurrent redemptions of the same
	// token mutually exclusive when run inside the rotation transaction.
	Revoke(ctx context.Context, token string) (bool, error)

	// RevokeAllForUser revokes every active token owned by userID.
	// Idempotent: revoking zero tokens is not an error.
	RevokeAllForUser(ctx context.Context, userID int64) error
}
