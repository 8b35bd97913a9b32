package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/middlewares"
	"github.com/sbilibin2017/gw-house-predictor/internal/services"
)

// AccountDeleter removes the user record, session pointer, and saved
// predictions.
type AccountDeleter interface {
	DeleteAccount(ctx context.Context, email string) error
}

// NewDeleteAccountHandler returns an HTTP handler for account deletion.
// @Summary Delete account
// @Description Removes the user record, the session pointer, and every saved prediction of the user.
// @Tags profile
// @Security BearerAuth
// @Success 204 "Account deleted"
// @Failure 401 "Not authenticated"
// @Failure 500 "Internal server error"
// @Router /account [delete]
func NewDeleteAccountHandler(svc AccountDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := svc.DeleteAccount(r.Context(), user.Email); err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
