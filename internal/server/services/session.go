// Package services contains server-side business logic. This file implements
// SessionService, the single authority for producing, validating, and
// retiring credentials: login, registration, refresh-token rotation, and
// revocation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/dbx"
	"github.com/dmitrijs2005/wenotes/internal/logging"
	"github.com/dmitrijs2005/wenotes/internal/server/auth"
	"github.com/dmitrijs2005/wenotes/internal/server/config"
	"github.com/dmitrijs2005/wenotes/internal/server/models"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/repomanager"
)

// AuthResult bundles a freshly authenticated user with a short-lived access
// token and the long-lived opaque refresh token that replaces any previously
// held one.
type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// SessionService provides authentication-related operations:
//   - Login: verify credentials and mint tokens
//   - Register: create users; registration implies an authenticated session
//   - Refresh: rotate refresh tokens and mint new access tokens
//   - LogoutAll: revoke every active refresh token of a user
type SessionService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	logger                       logging.Logger
	jwtSecret                    []byte
	bcryptCost                   int
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger, cfg *config.Config) *SessionService {
	return &SessionService{
		db:                           db,
		repomanager:                  m,
		logger:                       logger.With("component", "session_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		bcryptCost:                   cfg.BcryptCost,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Login verifies the username/password pair and, on success, mints a new
// token pair. Both an unknown username and a wrong password yield
// common.ErrInvalidCredentials so the endpoint cannot be used to enumerate
// accounts.
func (s *SessionService) Login(ctx context.Context, username string, password []byte) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user, s.db)
}

// Register creates a new user and proceeds exactly as Login's success path.
// A taken username yields common.ErrUsernameTaken and leaves no new rows.
func (s *SessionService) Register(ctx context.Context, username string, password []byte, role models.Role) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issueTokens(ctx, user, s.db)
}

// Refresh redeems a refresh token for a new token pair. Redemption is
// single-use: the presented token is revoked in the same transaction that
// stores its replacement, with a compare-and-revoke guard so two concurrent
// redemptions of the same token can never both succeed.
//
// Replay of an already-rotated token is a compromise signal (either the
// original holder or a thief lost the race) and is logged distinctly.
func (s *SessionService) Refresh(ctx context.Context, presented string) (*AuthResult, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, presented)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidOrExpiredToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.RevokedAt != nil {
		s.logger.Warn(ctx, "refresh token reuse detected", "user_id", token.UserID)
		return nil, common.ErrInvalidOrExpiredToken
	}

	if !time.Now().Before(token.ExpiresAt) {
		// Revoke on failed redemption, closing the replay window.
		if _, err := repo.Revoke(ctx, presented); err != nil {
			return nil, fmt.Errorf("error revoking expired token: %w", err)
		}
		return nil, common.ErrInvalidOrExpiredToken
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// The owner is gone; the stale token must still not be redeemable
			// again, so consume it before failing.
			if _, err := repo.Revoke(ctx, presented); err != nil {
				return nil, fmt.Errorf("error revoking orphaned token: %w", err)
			}
			return nil, common.ErrInvalidOrExpiredToken
		}
		return nil, common.ErrorInternal
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		revoked, err := s.repomanager.RefreshTokens(tx).Revoke(ctx, presented)
		if err != nil {
			return fmt.Errorf("error revoking refresh token: %w", err)
		}
		if !revoked {
			// Lost a concurrent redemption race after the pre-check.
			s.logger.Warn(ctx, "refresh token reuse detected", "user_id", token.UserID)
			return common.ErrInvalidOrExpiredToken
		}
		var issueErr error
		result, issueErr = s.issueTokens(ctx, user, tx)
		return issueErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LogoutAll revokes every active refresh token owned by userID. Idempotent:
// a second call with zero active tokens succeeds.
func (s *SessionService) LogoutAll(ctx context.Context, userID int64) error {
	if err := s.repomanager.RefreshTokens(s.db).RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("error revoking tokens: %w", err)
	}
	return nil
}

// --- helpers below ---

func (s *SessionService) generateAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Username, string(user.Role), s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *SessionService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *SessionService) issueTokens(ctx context.Context, user *models.User, db dbx.DBTX) (*AuthResult, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
