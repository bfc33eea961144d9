// Package server initializes and runs the application server: configuration,
// database and migrations, services, the HTTP API, and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/wenotes/internal/logging"
	"github.com/dmitrijs2005/wenotes/internal/server/config"
	"github.com/dmitrijs2005/wenotes/internal/server/httpapi"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wenotes/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler

	loginLimiter   *httpapi.RateLimiter
	refreshLimiter *httpapi.RateLimiter
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	sessionService := services.NewSessionService(db, rm, logger, cfg)
	userService := services.NewUserService(db, rm, cfg)
	noteService := services.NewNoteService(db, rm, cfg)
	attachmentService := services.NewAttachmentService(cfg)

	loginLimiter := httpapi.NewLoginLimiter(cfg)
	refreshLimiter := httpapi.NewRefreshLimiter(cfg)

	handler := httpapi.NewRouter(&httpapi.RouterDeps{
		Config:         cfg,
		Logger:         logger,
		Sessions:       sessionService,
		Users:          userService,
		Notes:          noteService,
		Attachments:    attachmentService,
		LoginLimiter:   loginLimiter,
		RefreshLimiter: refreshLimiter,
	})

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		handler:        handler,
		loginLimiter:   loginLimiter,
		refreshLimiter: refreshLimiter,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then shuts down in-flight requests gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr, "env", app.config.Env)

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, "server error", "error", err.Error())
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}

	app.loginLimiter.Stop()
	app.refreshLimiter.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
