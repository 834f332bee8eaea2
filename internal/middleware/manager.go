package middleware

import (
	"context"
	"net/http"
)

type RoleStore interface {
	GetRole(ctx context.Context, userID string) (string, error)
}

// RequireManager restricts a route to cooperative management: users whose
// role is manager or admin.
func RequireManager(roles RoleStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			role, err := roles.GetRole(r.Context(), userID)
			if err != nil {
				deny(w, http.StatusInternalServerError, "unable to verify role")
				return
			}
			if role != "manager" && role != "admin" {
				deny(w, http.StatusForbidden, "manager privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
