package http

import (
	"context"
	"net/http"
	"strings"

	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware validates the bearer token and stores its claims on the
// request context. Routes behind it can assume claims are present.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFrom(r *http.Request) *security.UserClaims {
	claims, _ := r.Context().Value(claimsKey).(*security.UserClaims)
	return claims
}

// requirePermission gates a handler on one permission from the token. The
// set travels inside the token, so permission checks never read shared
// server state.
func requirePermission(perm security.Permission, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if claims == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		if !security.NewPermissionSet(claims.Permissions).Has(perm) {
			logger.Warn("permission denied",
				"user_id", claims.UserID, "role", claims.Role, "permission", perm)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "permission denied"})
			return
		}
		h(w, r)
	}
}
