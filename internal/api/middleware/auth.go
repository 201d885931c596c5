package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dom/hero-forge/internal/logger"
	"github.com/dom/hero-forge/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	CallerKey contextKey = "caller"
)

// Auth resolves the bearer token into the calling account
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Sugar().Errorf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Sugar().Errorf("ERROR [middleware.Auth] invalid authorization header format")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			caller, err := authService.CallerFromToken(parts[1])
			if err != nil {
				logger.Sugar().Errorf("ERROR [middleware.Auth] token validation failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetCaller(ctx context.Context) (uuid.UUID, bool) {
	caller, ok := ctx.Value(CallerKey).(uuid.UUID)
	return caller, ok
}
