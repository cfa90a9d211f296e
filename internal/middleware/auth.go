package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/prodcat/prodcat-go/internal/crypto"
	"github.com/prodcat/prodcat-go/internal/model"
)

type contextKey string

const principalKey contextKey = "principal"

// Messages returned to clients for rejected credentials. The two cases are
// distinguishable but share the 401 status.
const (
	MsgNoToken      = "Access denied. No token provided."
	MsgInvalidToken = "Invalid token."
)

// JWTAuth returns middleware that validates a Bearer token from the Authorization header.
// Any valid token authorizes the request; there are no per-resource checks.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			principal := model.Principal{UserID: claims.UserID, Email: claims.Email}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext extracts the authenticated principal from the request context.
func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok
}

// bearerToken strips the Bearer scheme from an Authorization header value.
// A header without the scheme is taken as the raw token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	return header
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
