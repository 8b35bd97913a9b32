package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
)

// ErrPredictorUnavailable is returned for transport failures and non-2xx
// responses from the prediction model.
var ErrPredictorUnavailable = errors.New("prediction service unavailable")

// PredictorHTTPFacade calls the external price-prediction model over HTTP.
// The model address is configuration, never hardcoded.
type PredictorHTTPFacade struct {
	client  *http.Client
	address string
}

// NewPredictorHTTPFacade creates a facade for the model at the given base
// address. Requests are bounded by the given timeout.
func NewPredictorHTTPFacade(address string, timeout time.Duration) *PredictorHTTPFacade {
	return &PredictorHTTPFacade{
		client:  &http.Client{Timeout: timeout},
		address: address,
	}
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

// Predict posts the feature payload to the model and returns the raw
// (unscaled) predicted price.
func (f *PredictorHTTPFacade) Predict(ctx context.Context, payload models.FeaturePayload) (float64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/predict", f.address)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("prediction request failed", "url", url, "error", err)
		return 0, ErrPredictorUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Errorw("prediction request rejected", "url", url, "status", resp.StatusCode)
		return 0, ErrPredictorUnavailable
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Log.Errorw("malformed prediction response", "url", url, "error", err)
		return 0, ErrPredictorUnavailable
	}

	logger.Log.Infow("prediction received", "url", url, "prediction", parsed.Prediction)

	return parsed.Prediction, nil
}
