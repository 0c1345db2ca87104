package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mikey/job-scam-detector/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// requireAuth wraps a handler with token verification. Tokens are accepted
// from the Authorization header (Bearer scheme) or the X-Auth-Token header.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var token string

		if header := r.Header.Get("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				jsonError(w, "Invalid token format", http.StatusUnauthorized)
				return
			}
			token = parts[1]
		}

		if token == "" {
			token = r.Header.Get("X-Auth-Token")
		}

		if token == "" {
			jsonError(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			jsonError(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// claimsFrom returns the verified claims attached by requireAuth.
func claimsFrom(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}

func jsonOK(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
