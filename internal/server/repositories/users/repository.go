// Package users declares the server-side repository contract for user records.
package users

import (
	"context"

	"github.com/dmitrijs2005/wenotes/internal/server/models"
)

// Repository defines persistence operations for user records.
// Implementations return common.ErrorNotFound when a lookup misses.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)

	// Delete removes the user row. The caller is responsible for revoking the
	// user's refresh tokens first; no cascade is assumed.
	Delete(ctx context.Context, id int64) error
}
