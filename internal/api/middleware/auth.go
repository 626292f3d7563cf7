package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmerin0/PlayersSimpleApp/internal/api/apierr"
	"github.com/cmerin0/PlayersSimpleApp/internal/model"
	"github.com/cmerin0/PlayersSimpleApp/internal/services/auth"
)

// Cookie names for the token pair
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// Auth creates authentication middleware. It resolves the caller identity
// from the access-token cookie (Authorization: Bearer as a fallback) and
// rejects the request before any handler, repository, or cache work happens.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractAccessToken(r)
			if tokenString == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			userID, err := authService.Authenticate(tokenString)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin creates middleware that allows only admin users through.
// Must be applied after Auth.
func RequireAdmin(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if _, err := authService.AuthorizeAdmin(r.Context(), userID); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractAccessToken extracts the access token from the request
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// GetUserID returns the authenticated user id from the request context
func GetUserID(ctx context.Context) (model.UserID, bool) {
	userID, ok := ctx.Value(userIDContextKey).(model.UserID)
	return userID, ok
}
