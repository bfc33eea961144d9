// Package cli implements the interactive WeNotes client: a small REPL over
// the API client and its typed services.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/wenotes/internal/client/api"
	"github.com/dmitrijs2005/wenotes/internal/client/config"
	"github.com/dmitrijs2005/wenotes/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	noteService services.NoteService
	userService services.UserService
	user        *services.User
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.NewClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient),
		noteService: services.NewNoteService(apiClient),
		userService: services.NewUserService(apiClient),
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
