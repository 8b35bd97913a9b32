package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/middlewares"
)

// Logouter defines the interface for ending a session.
type Logouter interface {
	Logout(ctx context.Context, email string) error
}

// NewLogoutHandler returns an HTTP handler that clears the session pointer.
// Saved predictions are untouched.
// @Summary Logout
// @Description Clears the session pointer of the authenticated user.
// @Tags auth
// @Security BearerAuth
// @Success 204 "Session ended"
// @Failure 401 "Not authenticated"
// @Failure 500 "Internal server error"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := svc.Logout(r.Context(), user.Email); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
