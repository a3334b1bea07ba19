package api

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
)

// AuthMiddleware guards operator endpoints with a static bearer token.
// Participant identity stays self-asserted; this token only protects
// room cleanup from drive-by requests.
type AuthMiddleware struct {
	token string
}

// NewAuthMiddleware creates middleware validating against the given
// token. An empty token disables the guarded endpoints entirely.
func NewAuthMiddleware(token string) *AuthMiddleware {
	return &AuthMiddleware{token: token}
}

// RequireAuth is a middleware that validates Bearer tokens
func (auth *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.token == "" {
			log.Printf("Warning: ADMIN_TOKEN not configured - operator access disabled")
			http.Error(w, "Authentication not configured", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Bearer token required", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(auth.token)) != 1 {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}
