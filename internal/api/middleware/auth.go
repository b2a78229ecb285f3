package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/items-api/internal/api/shared"
)

// AuthMiddleware provides bearer-token authentication for routes.
//
// Any non-empty token is accepted; there is no signature verification, expiry
// check, or user lookup. This is an intentional placeholder for a real
// identity provider.
type AuthMiddleware struct{}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// Authenticate checks the Authorization header for a non-empty bearer token
// and adds the derived principal to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		token := parts[1]
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Empty token provided")
			return
		}

		ctx := shared.WithPrincipal(r.Context(), principalFromToken(token))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFromToken derives a request principal from the presented token.
// If the token happens to be a JWT its subject claim is used, read without
// any signature verification; otherwise the opaque token itself serves as
// the principal.
func principalFromToken(token string) string {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return token
	}
	if sub, err := parsed.Claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	return token
}
