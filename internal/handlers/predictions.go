package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/middlewares"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"github.com/sbilibin2017/gw-house-predictor/internal/services"
)

// PredictionSaver stores a prediction the user chose to keep.
type PredictionSaver interface {
	Save(ctx context.Context, userID uuid.UUID, form models.PredictionForm, predictedPrice float64) (uuid.UUID, error)
}

// PredictionLister lists the user's saved predictions.
type PredictionLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.PredictionDB, error)
}

// PredictionDeleter removes one saved prediction.
type PredictionDeleter interface {
	Delete(ctx context.Context, userID, predictionID uuid.UUID) error
}

// SavePredictionRequest represents the JSON body for saving a prediction:
// the feature form plus the price the model returned for it
// swagger:model SavePredictionRequest
type SavePredictionRequest struct {
	models.PredictionForm
	// Scaled predicted price returned by /predict
	// required: true
	Prediction float64 `json:"prediction"`
}

// SavePredictionResponse represents a successful save
// swagger:model SavePredictionResponse
type SavePredictionResponse struct {
	// Generated id of the saved prediction
	PredictionID string `json:"prediction_id"`
}

// ListPredictionsResponse represents the saved predictions of a user
// swagger:model ListPredictionsResponse
type ListPredictionsResponse struct {
	Predictions []models.PredictionDB `json:"predictions"`
}

// PredictionsErrorResponse represents an error response for the store
// swagger:model PredictionsErrorResponse
type PredictionsErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// NewSavePredictionHandler returns an HTTP handler for saving a prediction.
// @Summary Save a prediction
// @Description Stores the submitted features together with the predicted price as a new entry.
// @Tags predictions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param savePredictionRequest body handlers.SavePredictionRequest true "Prediction to save"
// @Success 201 {object} handlers.SavePredictionResponse "Saved"
// @Failure 400 {object} handlers.PredictionsErrorResponse "Missing or malformed field"
// @Failure 401 "Not authenticated"
// @Failure 500 {object} handlers.PredictionsErrorResponse "Internal server error"
// @Router /predictions [post]
func NewSavePredictionHandler(svc PredictionSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req SavePredictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PredictionsErrorResponse{Error: "invalid request body"})
			return
		}

		id, err := svc.Save(r.Context(), user.UserID, req.PredictionForm, req.Prediction)
		if err != nil {
			var vErr *services.ValidationError
			switch {
			case errors.As(err, &vErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(PredictionsErrorResponse{Error: vErr.Error()})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(PredictionsErrorResponse{Error: "Failed to save data"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SavePredictionResponse{
			PredictionID: id.String(),
		})
	}
}

// NewListPredictionsHandler returns an HTTP handler that lists saved
// predictions in save order.
// @Summary List saved predictions
// @Tags predictions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ListPredictionsResponse "Saved predictions"
// @Failure 401 "Not authenticated"
// @Failure 500 {object} handlers.PredictionsErrorResponse "Internal server error"
// @Router /predictions [get]
func NewListPredictionsHandler(svc PredictionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		predictions, err := svc.List(r.Context(), user.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(PredictionsErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ListPredictionsResponse{
			Predictions: predictions,
		})
	}
}

// NewDeletePredictionHandler returns an HTTP handler deleting one saved
// prediction by id.
// @Summary Delete a saved prediction
// @Tags predictions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Prediction id"
// @Success 204 "Deleted"
// @Failure 400 {object} handlers.PredictionsErrorResponse "Malformed id"
// @Failure 401 "Not authenticated"
// @Failure 500 {object} handlers.PredictionsErrorResponse "Internal server error"
// @Router /predictions/{id} [delete]
func NewDeletePredictionHandler(svc PredictionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		predictionID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PredictionsErrorResponse{Error: "invalid prediction id"})
			return
		}

		if err := svc.Delete(r.Context(), user.UserID, predictionID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(PredictionsErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
