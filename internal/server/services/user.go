package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/dbx"
	"github.com/dmitrijs2005/wenotes/internal/server/auth"
	"github.com/dmitrijs2005/wenotes/internal/server/config"
	"github.com/dmitrijs2005/wenotes/internal/server/models"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/repomanager"
)

// UserUpdateInput carries the optional profile changes for UpdateUser.
// CurrentPassword is required iff NewPassword is set.
type UserUpdateInput struct {
	ID              int64
	Username        string
	NewPassword     []byte
	CurrentPassword []byte
}

// UserService handles profile updates and account deletion. Role changes are
// deliberately not exposed here; the role column is immutable through the
// public API.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bcryptCost  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		bcryptCost:  cfg.BcryptCost,
	}
}

// UpdateUser changes username and/or password of an existing user. A password
// change requires the current password; a username change to a taken name
// yields common.ErrUsernameTaken.
func (s *UserService) UpdateUser(ctx context.Context, input UserUpdateInput) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	current, err := repo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if input.Username != "" && input.Username != current.Username {
		if _, err := repo.GetByUsername(ctx, input.Username); err == nil {
			return nil, common.ErrUsernameTaken
		} else if !errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInternal
		}
		current.Username = input.Username
	}

	if len(input.NewPassword) > 0 {
		if !auth.CheckPassword(current.PasswordHash, input.CurrentPassword) {
			return nil, common.ErrInvalidCredentials
		}
		hash, err := auth.HashPassword(input.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, common.ErrorInternal
		}
		current.PasswordHash = hash

		// A changed password invalidates every outstanding session.
		if err := s.repomanager.RefreshTokens(s.db).RevokeAllForUser(ctx, input.ID); err != nil {
			return nil, fmt.Errorf("error revoking tokens: %w", err)
		}
	}

	updated, err := repo.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

// DeleteSelf verifies the current password, revokes every refresh token, and
// then deletes the user together with their notes. Token revocation comes
// first: no cascading foreign key is assumed, and a dangling active token for
// a deleted user must never exist.
func (s *UserService) DeleteSelf(ctx context.Context, userID int64, currentPassword []byte) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return common.ErrInvalidCredentials
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).RevokeAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("error revoking tokens: %w", err)
		}
		if err := s.repomanager.Notes(tx).DeleteAllForUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting notes: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}
