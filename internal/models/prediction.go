package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PredictionForm is the raw feature input as submitted by the client.
// All fields arrive as strings; the six yes/no fields accept "Yes" or "No",
// the remaining seven must parse as numbers. Every field is required.
type PredictionForm struct {
	Bedrooms         string `json:"bedrooms"`
	Grade            string `json:"grade"`
	HasBasement      string `json:"has_basement"`
	LivingInM2       string `json:"living_in_m2"`
	Renovated        string `json:"renovated"`
	NiceView         string `json:"nice_view"`
	PerfectCondition string `json:"perfect_condition"`
	RealBathrooms    string `json:"real_bathrooms"`
	HasLavatory      string `json:"has_lavatory"`
	SingleFloor      string `json:"single_floor"`
	Month            string `json:"month"`
	QuartileZone     string `json:"quartile_zone"`
	Year             string `json:"year"`
}

// FeaturePayload is the coerced feature set sent to the prediction model.
// Yes/no fields are carried as 0 or 1. The JSON shape is the model's wire
// contract: exactly these thirteen keys.
type FeaturePayload struct {
	Bedrooms         int     `json:"bedrooms" db:"bedrooms"`
	Grade            int     `json:"grade" db:"grade"`
	HasBasement      int     `json:"has_basement" db:"has_basement"`
	LivingInM2       float64 `json:"living_in_m2" db:"living_in_m2"`
	Renovated        int     `json:"renovated" db:"renovated"`
	NiceView         int     `json:"nice_view" db:"nice_view"`
	PerfectCondition int     `json:"perfect_condition" db:"perfect_condition"`
	RealBathrooms    int     `json:"real_bathrooms" db:"real_bathrooms"`
	HasLavatory      int     `json:"has_lavatory" db:"has_lavatory"`
	SingleFloor      int     `json:"single_floor" db:"single_floor"`
	Month            int     `json:"month" db:"month"`
	QuartileZone     int     `json:"quartile_zone" db:"quartile_zone"`
	Year             int     `json:"year" db:"year"`
}

// PredictionDB represents a saved prediction row: one record per prediction
// with its own generated id, owned by a user.
type PredictionDB struct {
	PredictionID   uuid.UUID `json:"prediction_id" db:"prediction_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	PredictedPrice float64   `json:"predicted_price" db:"predicted_price"`
	FeaturePayload
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PredictionResult is the outcome of a submission: the scaled price and its
// display form.
type PredictionResult struct {
	Price   float64        `json:"prediction"`
	Display string         `json:"display"`
	Payload FeaturePayload `json:"features"`
}

// PredictionEvent is published to Kafka when a prediction is saved.
type PredictionEvent struct {
	EventID        string  `json:"event_id"`        // Unique identifier of the event
	PredictionID   string  `json:"prediction_id"`   // Saved prediction id
	UserID         string  `json:"user_id"`         // Owner of the prediction
	PredictedPrice float64 `json:"predicted_price"` // Scaled price
	Timestamp      int64   `json:"timestamp"`       // Unix timestamp (seconds)
}

// FormatRupees renders a price the way the app displays it: zero decimal
// places with the rupee prefix and suffix, e.g. "Rs. 4500.00/=".
func FormatRupees(price float64) string {
	return fmt.Sprintf("Rs. %.0f.00/=", price)
}
