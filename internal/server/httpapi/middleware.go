package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/logging"
	"github.com/dmitrijs2005/wenotes/internal/server/auth"
)

// authenticate verifies the bearer access token and puts the caller's claims
// on the context. No database round trip: possession of a valid token is
// authorization enough, which is what makes revocation a refresh-time concern.
func authenticate(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeader)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeFailure(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := auth.ParseToken(token, secretKey)
			if err != nil {
				writeError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), claims)))
		})
	}
}

// requireSelf rejects requests where the {id} path parameter does not match
// the authenticated caller. 404 rather than 403: the API never confirms that
// another user's resource exists.
func requireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromContext(r.Context())
		if caller == nil {
			writeFailure(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		id, err := parseID(chi.URLParam(r, "id"))
		if err != nil || id != caller.UserID {
			writeFailure(w, http.StatusNotFound, "not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs one line per request with method, path, status and
// duration.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// recoverer converts a handler panic into a 500 instead of tearing down the
// connection.
func recoverer(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context(), "panic in handler", "panic", rec, "path", r.URL.Path)
					writeFailure(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
