package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-house-predictor/internal/jwt"
	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/repositories"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Parse(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// SessionReader resolves the session pointer for an email.
type SessionReader interface {
	Get(ctx context.Context, email string) (string, error)
}

// AuthUser is the authenticated identity placed in the request context.
type AuthUser struct {
	UserID uuid.UUID
	Email  string
}

type authKey struct{}

var userKey = authKey{}

// GetUserFromContext returns the authenticated user, or nil when the request
// did not pass the auth middleware.
func GetUserFromContext(ctx context.Context) *AuthUser {
	user, _ := ctx.Value(userKey).(*AuthUser)
	return user
}

// ContextWithUser places an authenticated identity into the context.
func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// AuthMiddleware validates the bearer token and checks that the session
// pointer still points at it: a token issued before logout is rejected even
// when it has not expired yet.
func AuthMiddleware(tokener Tokener, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.Parse(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			currentTokenID, err := sessions.Get(ctx, claims.Email)
			if err != nil {
				if !errors.Is(err, repositories.ErrSessionNotFound) {
					logger.Log.Errorw("session lookup failed", "err", err)
				}
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if currentTokenID != claims.TokenID {
				logger.Log.Errorw("stale token", "email", claims.Email)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = ContextWithUser(ctx, &AuthUser{
				UserID: claims.UserID,
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
