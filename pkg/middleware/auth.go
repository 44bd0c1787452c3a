package middleware

import (
	"context"
	"net/http"
	"strings"

	"autonuoma/pkg/auth"
	"autonuoma/pkg/response"
)

// IdentityResolver confirms that the user id carried by a token still refers
// to a stored account, returning the canonical id. The reservation endpoints
// never trust the token alone.
type IdentityResolver interface {
	ResolveID(ctx context.Context, id string) (string, error)
}

type userIDKey struct{}

// UserIDFromCtx returns the authenticated caller id set by Auth.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok
}

// WithUserID stores a caller id in ctx. Exported for handler tests.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// Auth verifies the bearer credential, resolves it to a stored identity, and
// stores the caller id in the request context. Missing or invalid credentials
// yield 401 before the handler runs.
func Auth(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w)
				return
			}

			claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				response.Unauthorized(w)
				return
			}

			id, err := resolver.ResolveID(r.Context(), claims.UserID)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}
