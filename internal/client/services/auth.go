package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/wenotes/internal/client/api"
	"github.com/dmitrijs2005/wenotes/internal/common"
)

// AuthService defines the session operations of the CLI.
//
// Contract:
//   - Register: create an account; the server starts a session immediately.
//   - Login: authenticate; the refresh cookie lands in the client's jar.
//   - Logout: revoke every session of the user and drop the cached token.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) (*User, error)
	Login(ctx context.Context, username string, password []byte) (*User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client *api.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

func (a *authService) authenticate(ctx context.Context, path, username string, password []byte) (*User, error) {
	req := credentialsRequest{Username: username, Password: string(password)}
	defer common.WipeByteArray(password)

	var resp authResponse
	if err := a.client.Do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}

	a.client.SetAccessToken(resp.AccessToken)
	return &resp.User, nil
}

func (a *authService) Register(ctx context.Context, username string, password []byte) (*User, error) {
	return a.authenticate(ctx, "/auth/register", username, password)
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*User, error) {
	return a.authenticate(ctx, "/auth/login", username, password)
}

// Logout revokes the server-side sessions and clears the cached access token
// regardless of the server outcome.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	a.client.ClearAccessToken()
	return err
}
