package auth

import (
	"context"
	"net/http"
	"strings"
)

// Principal is the authenticated identity attached to a single
// request's processing context. It is never shared across requests.
type Principal struct {
	Username string
}

type contextKey string

const principalKey = contextKey("principal")

// bearerPrefix is matched case-sensitively, including the space.
const bearerPrefix = "Bearer "

// Authenticator returns a middleware that resolves the Authorization
// header into a request principal. It never rejects a request by
// itself: a missing, malformed or invalid token leaves the request
// anonymous, and enforcement happens downstream in the access policy
// and the ownership checks.
func Authenticator(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.Verify(header[len(bearerPrefix):])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithPrincipal(r.Context(), &Principal{Username: claims.Subject})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal returns a context carrying the given principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom extracts the principal attached by the Authenticator,
// or nil for anonymous requests.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
