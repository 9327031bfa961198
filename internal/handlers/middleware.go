package handlers

import (
	"net/http"
	"strings"

	"github.com/devlink-social/apiserver/internal/auth"
)

// TokenHeader carries the JWT on authenticated requests.
const TokenHeader = "x-auth-token"

// RequireAuth verifies the x-auth-token header and injects the subject
// into the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := strings.TrimSpace(r.Header.Get(TokenHeader))
			if tokenString == "" {
				writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}
