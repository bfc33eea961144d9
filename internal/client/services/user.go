package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/wenotes/internal/client/api"
	"github.com/dmitrijs2005/wenotes/internal/common"
)

// UserService defines the profile operations of the CLI.
type UserService interface {
	ChangeUsername(ctx context.Context, userID int64, username string) (*User, error)
	ChangePassword(ctx context.Context, userID int64, current, next []byte) (*User, error)
	DeleteAccount(ctx context.Context, userID int64, current []byte) error
}

type userService struct {
	client *api.Client
}

// NewUserService constructs a UserService bound to the given API client.
func NewUserService(client *api.Client) UserService {
	return &userService{client: client}
}

type userUpdateRequest struct {
	Username        string `json:"username,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
}

func (s *userService) ChangeUsername(ctx context.Context, userID int64, username string) (*User, error) {
	var user User
	req := userUpdateRequest{Username: username}
	if err := s.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", userID), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword updates the password. The server revokes every refresh
// token on success, so other devices fall back to the login screen.
func (s *userService) ChangePassword(ctx context.Context, userID int64, current, next []byte) (*User, error) {
	req := userUpdateRequest{NewPassword: string(next), CurrentPassword: string(current)}
	defer common.WipeByteArray(current)
	defer common.WipeByteArray(next)

	var user User
	if err := s.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", userID), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type userDeleteRequest struct {
	CurrentPassword string `json:"currentPassword"`
}

// DeleteAccount removes the account and drops the cached access token.
func (s *userService) DeleteAccount(ctx context.Context, userID int64, current []byte) error {
	req := userDeleteRequest{CurrentPassword: string(current)}
	defer common.WipeByteArray(current)

	if err := s.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), req, nil); err != nil {
		return err
	}
	s.client.ClearAccessToken()
	return nil
}
