package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/middlewares"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"github.com/sbilibin2017/gw-house-predictor/internal/services"
)

// ProfileGetter reads the authenticated user's record.
type ProfileGetter interface {
	GetProfile(ctx context.Context, email string) (*models.UserDB, error)
}

// ProfileUpdater rewrites the authenticated user's name and phone.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, email, name, phone string) error
}

// ProfileResponse represents the user profile
// swagger:model ProfileResponse
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateProfileRequest represents the JSON body for a profile edit
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// Name
	// required: true
	Name string `json:"name"`

	// Phone
	// required: true
	Phone string `json:"phone"`
}

// ProfileErrorResponse represents an error response for profile operations
// swagger:model ProfileErrorResponse
type ProfileErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// NewGetProfileHandler returns an HTTP handler for reading the profile.
// @Summary Get profile
// @Description Returns the record of the authenticated user.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ProfileResponse "User profile"
// @Failure 401 "Not authenticated"
// @Failure 500 {object} handlers.ProfileErrorResponse "Internal server error"
// @Router /profile [get]
func NewGetProfileHandler(svc ProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		record, err := svc.GetProfile(r.Context(), user.Email)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ProfileErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ProfileResponse{
			Name:  record.Name,
			Email: record.Email,
			Phone: record.Phone,
		})
	}
}

// NewUpdateProfileHandler returns an HTTP handler for the profile edit.
// @Summary Update profile
// @Description Rewrites the record with new name and phone. Both are required.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Profile edit"
// @Success 200 {object} handlers.ProfileResponse "Updated profile"
// @Failure 400 {object} handlers.ProfileErrorResponse "Missing name or phone"
// @Failure 401 "Not authenticated"
// @Failure 500 {object} handlers.ProfileErrorResponse "Internal server error"
// @Router /profile [put]
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ProfileErrorResponse{Error: "invalid request body"})
			return
		}

		if err := svc.UpdateProfile(r.Context(), user.Email, req.Name, req.Phone); err != nil {
			var vErr *services.ValidationError
			switch {
			case errors.As(err, &vErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ProfileErrorResponse{Error: vErr.Error()})
			case errors.Is(err, services.ErrInvalidCredentials):
				w.WriteHeader(http.StatusUnauthorized)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ProfileErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ProfileResponse{
			Name:  req.Name,
			Email: user.Email,
			Phone: req.Phone,
		})
	}
}
