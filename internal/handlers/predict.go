package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-house-predictor/internal/facades"
	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"github.com/sbilibin2017/gw-house-predictor/internal/services"
)

// PredictSubmitter validates a feature form and submits it to the model.
type PredictSubmitter interface {
	Submit(ctx context.Context, form models.PredictionForm) (*models.PredictionResult, error)
}

// PredictResponse represents a successful prediction
// swagger:model PredictResponse
type PredictResponse struct {
	// Scaled predicted price
	Prediction float64 `json:"prediction"`
	// Display form, e.g. "Rs. 4500.00/="
	Display string `json:"display"`
	// Coerced feature payload that was sent to the model
	Features models.FeaturePayload `json:"features"`
}

// PredictErrorResponse represents an error response for prediction
// swagger:model PredictErrorResponse
type PredictErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// NewPredictHandler returns an HTTP handler for price prediction.
// @Summary Predict house price
// @Description Validates the thirteen feature fields, submits them to the prediction model, and returns the scaled price. One model call per request, no retry.
// @Tags predictions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param predictionForm body models.PredictionForm true "Feature form; yes/no fields take Yes or No"
// @Success 200 {object} handlers.PredictResponse "Predicted price"
// @Failure 400 {object} handlers.PredictErrorResponse "Missing or malformed field"
// @Failure 502 {object} handlers.PredictErrorResponse "Prediction service unavailable"
// @Router /predict [post]
func NewPredictHandler(svc PredictSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.PredictionForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PredictErrorResponse{Error: "invalid request body"})
			return
		}

		result, err := svc.Submit(r.Context(), form)
		if err != nil {
			var vErr *services.ValidationError
			switch {
			case errors.As(err, &vErr):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(PredictErrorResponse{Error: vErr.Error()})
			case errors.Is(err, facades.ErrPredictorUnavailable):
				w.WriteHeader(http.StatusBadGateway)
				json.NewEncoder(w).Encode(PredictErrorResponse{Error: "Failed to fetch prediction"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(PredictErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(PredictResponse{
			Prediction: result.Price,
			Display:    result.Display,
			Features:   result.Payload,
		})
	}
}
