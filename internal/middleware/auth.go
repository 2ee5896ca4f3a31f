package middleware

import (
	"context"
	"net/http"
	"strings"

	"cureconnect-api/internal/auth"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// UserID extracts the authenticated user id set by RequireAuth or
// OptionalAuth. ok is false for anonymous requests.
func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDKey).(string)
	return uid, ok && uid != ""
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

// RequireAuth rejects requests without a valid bearer token: 401 when the
// token is missing, 403 when it does not verify.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				http.Error(w, `{"message":"Access denied. No token provided."}`, http.StatusUnauthorized)
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				http.Error(w, `{"message":"Invalid token."}`, http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the caller identity when a valid token is
// present and lets everything else through anonymously. Invalid tokens
// are ignored rather than rejected, matching the public booking flow.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := bearerToken(r); raw != "" {
				if claims, err := auth.ParseToken(raw, secret); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), UserIDKey, claims.UserID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
