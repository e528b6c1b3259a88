package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"staffdesk/internal/api/response"
)

type contextKey string

const (
	ContextUserID contextKey = "user_id"
	ContextRole   contextKey = "role"
)

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(accessSecret)}
}

// Authenticate requires a bearer token signed with the access secret
// and stashes the subject and role in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(auth, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid authorization header")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(w, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid token claims")
			return
		}

		ctx := r.Context()
		if sub, _ := claims["sub"].(string); sub != "" {
			ctx = context.WithValue(ctx, ContextUserID, sub)
		}
		if role, _ := claims["role"].(string); role != "" {
			ctx = context.WithValue(ctx, ContextRole, role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
