package http

import (
	"context"
	"net/http"
	"strings"

	"tahseel-backend/internal/domain"
	"tahseel-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate validates the Bearer token and stashes its claims in the
// request context. Refresh tokens are rejected here; they are only good for
// the refresh endpoint.
func Authenticate(tokens security.TokenManager) func(http.Handler) http.Handler {
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
			if claims.Type != security.TokenTypeAccess {
				writeError(w, security.ErrWrongTokenType)
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

// RequireRoles rejects authenticated users whose role is not in the allow
// list.
func RequireRoles(roles ...domain.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[domain.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r)
			if claims == nil || !allowed[claims.Role] {
				writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// scopeCollector narrows an optional collector filter for collector-role
// users: they only ever see their own data, whatever the query says.
func scopeCollector(r *http.Request, requested *int32) *int32 {
	claims := claimsFrom(r)
	if claims != nil && claims.Role == domain.UserRoleCollector {
		return claims.CollectorID
	}
	return requested
}
