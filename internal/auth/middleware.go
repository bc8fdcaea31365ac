package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
)

// UserVerifier confirms the token's subject still exists. A deleted user's
// outstanding tokens must stop resolving.
type UserVerifier interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Middleware resolves the bearer token to an authenticated identity and
// stores the claims in the request context. Every protected route group
// mounts this once; handlers and services read claims from context only.
func Middleware(users UserVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := config.WithContext(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				config.Error(w, apperr.Unauthenticated("no token provided, access denied"))
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				config.Error(w, apperr.Unauthenticated("malformed authorization header"))
				return
			}

			claims, err := ValidateJWT(parts[1])
			if err != nil {
				log.WithError(err).Warn("Token verification failed")
				config.Error(w, apperr.Unauthenticated("not authorized, invalid token"))
				return
			}

			exists, err := users.Exists(r.Context(), claims.UserID)
			if err != nil {
				log.WithError(err).Error("Failed to verify token subject")
				config.Error(w, err)
				return
			}
			if !exists {
				log.WithField("user_id", claims.UserID).Warn("Token subject no longer exists")
				config.Error(w, apperr.Unauthenticated("not authorized, user not found"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
