package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"lumo/pkg/apperr"
	"lumo/pkg/logger"
	"lumo/pkg/respond"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserID returns the authenticated user's ID stored by NewAuth, or "" for
// an unauthenticated request.
func UserID(r *http.Request) string {
	userID, _ := r.Context().Value(UserIDKey).(string)
	return userID
}

// NewAuth builds the authentication middleware around the identity
// provider's JWT secret. Identity is resolved before anything else runs, so
// a request without a valid session never reaches the store.
func NewAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For WebSockets, tokens are passed in the query string because
			// the browser's WebSocket API doesn't support custom headers.
			tokenString := r.URL.Query().Get("token")

			// Fallback to Header for regular API calls.
			if tokenString == "" {
				authHeader := r.Header.Get("Authorization")
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if tokenString == "" {
				respond.Error(w, fmt.Errorf("%w: no token provided", apperr.ErrUnauthorized))
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// The identity provider signs with HMAC.
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				if secret == "" {
					logger.Sugar.Error("SUPABASE_JWT_SECRET is not set; rejecting all sessions")
					return nil, fmt.Errorf("server is not configured to validate JWTs")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Sugar.Infof("Invalid token: %v", err)
				respond.Error(w, fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthorized))
				return
			}

			// The user's ID is the 'sub' claim.
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				respond.Error(w, fmt.Errorf("%w: could not parse token claims", apperr.ErrUnauthorized))
				return
			}
			userID, ok := claims["sub"].(string)
			if !ok || userID == "" {
				respond.Error(w, fmt.Errorf("%w: user ID (sub) claim is missing or invalid", apperr.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
