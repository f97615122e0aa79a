package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// TokenResolver turns a bearer token into the stored account it names.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// Authenticator returns middleware that resolves the request's bearer token
// to a principal and stores it in the request context. Requests without a
// valid, resolvable token never reach the wrapped handler.
func Authenticator(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}

			principal, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credentials from an Authorization header carrying
// the Bearer scheme. Scheme names are case-insensitive (RFC 7235), so
// "bearer x" and "BEARER x" are accepted too. Returns "" when the header is
// absent, uses another scheme, or carries no credentials.
func bearerToken(header string) string {
	const scheme = "Bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return ""
	}
	return header[len(scheme):]
}

// principalFromContext extracts the principal stored by Authenticator.
// Handlers fetch it once and pass it to services as an explicit argument.
func principalFromContext(ctx context.Context) (*models.User, bool) {
	principal, ok := ctx.Value(principalKey).(*models.User)
	return principal, ok
}
