// Package middleware carries the caller identity asserted by the upstream
// gateway into request context and enforces role access.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"vendor-collective/logging"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "userRole"
)

// Identity reads the trusted X-User-Id and X-User-Role headers set by the
// gateway after verifying the caller's token, and stores them in context.
// Requests without a parseable user id are rejected.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get("X-User-Id")
		userID, err := uuid.Parse(rawID)
		if err != nil {
			logging.L.Warnf("⚠️ Identity: Missing or invalid X-User-Id header")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, r.Header.Get("X-User-Role"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers whose asserted role is not in allowed.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := Role(r.Context())
			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			logging.L.Warnf("⚠️ RequireRole: Role %q not allowed for %s %s", role, r.Method, r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

// UserID returns the caller's id from context. The zero UUID means the
// Identity middleware did not run.
func UserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// Role returns the caller's role from context.
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey).(string); ok {
		return role
	}
	return ""
}
