package server

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenAuth maps bearer tokens to user ids. The reference backend trusts a
// static token table from config; a real deployment would swap in a session
// or OIDC validator behind the same middleware.
type TokenAuth struct {
	tokens map[string]string
}

func NewTokenAuth(tokens map[string]string) *TokenAuth {
	return &TokenAuth{tokens: tokens}
}

// Middleware authenticates the request and stores the user id in the context.
func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID, ok := a.tokens[token]
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user id set by Middleware.
func userFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
