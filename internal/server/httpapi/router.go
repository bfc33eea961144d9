package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/wenotes/internal/logging"
	"github.com/dmitrijs2005/wenotes/internal/server/config"
	"github.com/dmitrijs2005/wenotes/internal/server/services"
)

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Config      *config.Config
	Logger      logging.Logger
	Sessions    *services.SessionService
	Users       *services.UserService
	Notes       *services.NoteService
	Attachments *services.AttachmentService

	// LoginLimiter guards login+register; RefreshLimiter guards refresh.
	// Callers own the limiters so they can Stop() them on shutdown.
	LoginLimiter   *RateLimiter
	RefreshLimiter *RateLimiter
}

// NewLoginLimiter creates the limiter for login/register requests.
func NewLoginLimiter(cfg *config.Config) *RateLimiter {
	return newKeyedLimiter(cfg.LoginRatePerMinute)
}

// NewRefreshLimiter creates the limiter for refresh requests.
func NewRefreshLimiter(cfg *config.Config) *RateLimiter {
	return newKeyedLimiter(cfg.RefreshRatePerMinute)
}

// NewRouter wires the full route table under /api/v1.
//
// Middleware order: recovery → request logging, then per-group auth and rate
// limiting. The public routes (register, login, refresh, shared notes,
// health) never see the auth middleware.
func NewRouter(deps *RouterDeps) http.Handler {
	production := deps.Config.IsProduction()
	secret := []byte(deps.Config.SecretKey)

	authHandler := NewAuthHandler(deps.Sessions, deps.Config.RefreshTokenValidityDuration, production)
	userHandler := NewUserHandler(deps.Users, production)
	noteHandler := NewNoteHandler(deps.Notes)
	uploadHandler := NewUploadHandler(deps.Attachments)

	r := chi.NewRouter()
	r.Use(recoverer(deps.Logger))
	r.Use(requestLogger(deps.Logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health)

		r.Route("/auth", func(r chi.Router) {
			r.With(deps.LoginLimiter.middleware).Post("/register", authHandler.Register)
			r.With(deps.LoginLimiter.middleware).Post("/login", authHandler.Login)

			// refresh accepts GET as well so the client coordinator can use a
			// body-less request
			r.With(deps.RefreshLimiter.middleware).Post("/refresh", authHandler.Refresh)
			r.With(deps.RefreshLimiter.middleware).Get("/refresh", authHandler.Refresh)

			r.With(authenticate(secret)).Post("/logout", authHandler.Logout)
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Use(authenticate(secret))
			r.Use(requireSelf)
			r.Patch("/", userHandler.Update)
			r.Delete("/", userHandler.Delete)
		})

		r.Route("/notes", func(r chi.Router) {
			// public shared view, outside the authenticated group
			r.Get("/shared/{token}", noteHandler.GetShared)

			r.Group(func(r chi.Router) {
				r.Use(authenticate(secret))

				r.Get("/", noteHandler.List)
				r.Post("/", noteHandler.Create)

				r.Post("/uploads", uploadHandler.CreateUploadURL)
				r.Get("/uploads", uploadHandler.GetDownloadURL)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", noteHandler.Get)
					r.Put("/", noteHandler.Update)
					r.Delete("/", noteHandler.Delete)
					r.Post("/pin", noteHandler.TogglePin)
					r.Post("/duplicate", noteHandler.Duplicate)
					r.Post("/share", noteHandler.Share)
				})
			})
		})
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
