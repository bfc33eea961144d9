// Package notes declares the server-side repository contract for note records.
package notes

import (
	"context"

	"github.com/dmitrijs2005/wenotes/internal/server/models"
)

// Repository defines persistence operations for notes. Lookups by id are
// intentionally not owner-scoped: the service layer loads by id and passes
// the result through the ownership guard, so "missing" and "not yours" are
// indistinguishable to callers.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Note, error)
	SearchByTitle(ctx context.Context, userID int64, title string) ([]*models.Note, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id int64) error

	// GetShared looks up a note by its public share token.
	GetShared(ctx context.Context, token string) (*models.Note, error)

	// DeleteAllForUser removes every note owned by userID (account deletion).
	DeleteAllForUser(ctx context.Context, userID int64) error
}
