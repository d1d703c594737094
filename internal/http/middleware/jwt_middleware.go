package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hs2213/proelection/internal/http/response"
	"github.com/hs2213/proelection/pkg/auth"
	"github.com/hs2213/proelection/pkg/logger"
)

type claimsKey struct{}

// RequireJWT rejects requests without a valid bearer token. When roles
// are given, the token's role must be one of them.
func RequireJWT(secret string, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "missing bearer token")
				return
			}

			claims, err := auth.Parse(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				response.Unauthorized(w, "invalid token")
				return
			}

			if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
				response.Forbidden(w, "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims set by RequireJWT.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
