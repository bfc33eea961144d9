package httpapi

import (
	"context"

	"github.com/dmitrijs2005/wenotes/internal/server/auth"
)

type contextKey string

const callerContextKey contextKey = "caller"

// withCaller stores the verified access-token claims on the request context.
func withCaller(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, callerContextKey, claims)
}

// callerFromContext returns the claims placed by the auth middleware, or nil
// when the request was not authenticated.
func callerFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(callerContextKey).(*auth.Claims)
	return claims
}
