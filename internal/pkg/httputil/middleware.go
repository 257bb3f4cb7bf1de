package httputil

import (
	"context"
	"net/http"
	"strings"

	"github.com/mergington/activities-api/internal/domain"
)

// CORSMiddleware creates CORS middleware that handles preflight requests
// and adds appropriate CORS headers to responses.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originsSet[origin] || originsSet["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

// Context keys for storing the authenticated caller.
const (
	UserKey  contextKey = "user"
	TokenKey contextKey = "token"
)

// bearerPrefix is matched case-sensitively: "bearer x" or "BEARER x" is
// rejected, matching the session token extraction contract.
const bearerPrefix = "Bearer "

// TokenResolver resolves a session token to the user who owns it.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware creates authentication middleware. The Authorization header
// must carry exactly "Bearer <token>"; the token is whitespace-trimmed and
// resolved against the active session set before the request proceeds.
func AuthMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				Error(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				Error(w, http.StatusUnauthorized, "invalid or expired session token")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = context.WithValue(ctx, TokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates middleware that admits only callers whose role is in
// the allowed set. Membership is an exact set check, not a hierarchy.
func RequireRole(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r.Context())
			if user == nil {
				Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if !user.Role.In(allowed...) {
				Error(w, http.StatusForbidden, "you do not have permission for this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUser extracts the authenticated user from context.
func GetUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(UserKey).(*domain.User); ok {
		return user
	}
	return nil
}

// GetToken extracts the session token from context.
func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}
