package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"github.com/segmentio/kafka-go"
)

// Predictor calls the external prediction model.
type Predictor interface {
	Predict(ctx context.Context, payload models.FeaturePayload) (float64, error)
}

// PredictionWriter defines write operations for saved predictions.
type PredictionWriter interface {
	Save(ctx context.Context, p models.PredictionDB) error
	Delete(ctx context.Context, userID, predictionID uuid.UUID) error
}

// PredictionReader lists saved predictions.
type PredictionReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PredictionDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PredictionService validates feature forms, submits them to the model, and
// manages the saved-prediction store.
type PredictionService struct {
	predictor   Predictor
	writer      PredictionWriter
	reader      PredictionReader
	kafkaWriter KafkaWriter
	multiplier  float64 // canonical output scaling, from config
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(
	predictor Predictor,
	writer PredictionWriter,
	reader PredictionReader,
	kafkaWriter KafkaWriter,
	multiplier float64,
) *PredictionService {
	return &PredictionService{
		predictor:   predictor,
		writer:      writer,
		reader:      reader,
		kafkaWriter: kafkaWriter,
		multiplier:  multiplier,
	}
}

type fieldKind int

const (
	numericField fieldKind = iota
	binaryField
)

// formFields fixes the order, name, and kind of the thirteen features.
var formFields = []struct {
	name string
	kind fieldKind
}{
	{"bedrooms", numericField},
	{"grade", numericField},
	{"has_basement", binaryField},
	{"living_in_m2", numericField},
	{"renovated", binaryField},
	{"nice_view", binaryField},
	{"perfect_condition", binaryField},
	{"real_bathrooms", numericField},
	{"has_lavatory", binaryField},
	{"single_floor", binaryField},
	{"month", numericField},
	{"quartile_zone", numericField},
	{"year", numericField},
}

func formValues(form models.PredictionForm) map[string]string {
	return map[string]string{
		"bedrooms":          form.Bedrooms,
		"grade":             form.Grade,
		"has_basement":      form.HasBasement,
		"living_in_m2":      form.LivingInM2,
		"renovated":         form.Renovated,
		"nice_view":         form.NiceView,
		"perfect_condition": form.PerfectCondition,
		"real_bathrooms":    form.RealBathrooms,
		"has_lavatory":      form.HasLavatory,
		"single_floor":      form.SingleFloor,
		"month":             form.Month,
		"quartile_zone":     form.QuartileZone,
		"year":              form.Year,
	}
}

// BuildPayload validates the form and coerces it into the wire payload:
// every field required, yes/no fields mapped to 1/0, the rest numeric.
func BuildPayload(form models.PredictionForm) (models.FeaturePayload, error) {
	values := formValues(form)

	coerced := make(map[string]float64, len(formFields))
	for _, field := range formFields {
		raw := values[field.name]
		if raw == "" {
			return models.FeaturePayload{}, newRequiredFieldError(field.name)
		}

		switch field.kind {
		case binaryField:
			switch raw {
			case "Yes":
				coerced[field.name] = 1
			case "No":
				coerced[field.name] = 0
			default:
				return models.FeaturePayload{}, &ValidationError{Field: field.name, Reason: "must be Yes or No"}
			}
		case numericField:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return models.FeaturePayload{}, &ValidationError{Field: field.name, Reason: "must be a number"}
			}
			coerced[field.name] = n
		}
	}

	return models.FeaturePayload{
		Bedrooms:         int(coerced["bedrooms"]),
		Grade:            int(coerced["grade"]),
		HasBasement:      int(coerced["has_basement"]),
		LivingInM2:       coerced["living_in_m2"],
		Renovated:        int(coerced["renovated"]),
		NiceView:         int(coerced["nice_view"]),
		PerfectCondition: int(coerced["perfect_condition"]),
		RealBathrooms:    int(coerced["real_bathrooms"]),
		HasLavatory:      int(coerced["has_lavatory"]),
		SingleFloor:      int(coerced["single_floor"]),
		Month:            int(coerced["month"]),
		QuartileZone:     int(coerced["quartile_zone"]),
		Year:             int(coerced["year"]),
	}, nil
}

// Submit validates the form, calls the model once, and returns the scaled
// price with its display form. No retry, no caching, no deduplication.
func (s *PredictionService) Submit(ctx context.Context, form models.PredictionForm) (*models.PredictionResult, error) {
	payload, err := BuildPayload(form)
	if err != nil {
		return nil, err
	}

	raw, err := s.predictor.Predict(ctx, payload)
	if err != nil {
		logger.Log.Errorw("prediction call failed", "err", err)
		return nil, err
	}

	price := raw * s.multiplier
	return &models.PredictionResult{
		Price:   price,
		Display: models.FormatRupees(price),
		Payload: payload,
	}, nil
}

// Save stores a prediction the user chose to keep and publishes an event.
func (s *PredictionService) Save(ctx context.Context, userID uuid.UUID, form models.PredictionForm, predictedPrice float64) (uuid.UUID, error) {
	payload, err := BuildPayload(form)
	if err != nil {
		return uuid.Nil, err
	}

	entry := models.PredictionDB{
		PredictionID:   uuid.New(),
		UserID:         userID,
		PredictedPrice: predictedPrice,
		FeaturePayload: payload,
	}
	if err := s.writer.Save(ctx, entry); err != nil {
		logger.Log.Errorw("failed to save prediction", "user_id", userID, "err", err)
		return uuid.Nil, err
	}

	s.publishPredictionSaved(ctx, entry)

	return entry.PredictionID, nil
}

// List returns the user's saved predictions in save order.
func (s *PredictionService) List(ctx context.Context, userID uuid.UUID) ([]models.PredictionDB, error) {
	predictions, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list predictions", "user_id", userID, "err", err)
		return nil, err
	}
	return predictions, nil
}

// Delete removes one saved prediction by id.
func (s *PredictionService) Delete(ctx context.Context, userID, predictionID uuid.UUID) error {
	if err := s.writer.Delete(ctx, userID, predictionID); err != nil {
		logger.Log.Errorw("failed to delete prediction", "user_id", userID, "prediction_id", predictionID, "err", err)
		return err
	}
	return nil
}

// publishPredictionSaved publishes a saved-prediction event to Kafka.
func (s *PredictionService) publishPredictionSaved(ctx context.Context, entry models.PredictionDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "prediction_id", entry.PredictionID)
		return
	}

	event := models.PredictionEvent{
		EventID:        uuid.NewString(),
		PredictionID:   entry.PredictionID.String(),
		UserID:         entry.UserID.String(),
		PredictedPrice: entry.PredictedPrice,
		Timestamp:      time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal prediction event for Kafka", "prediction_id", entry.PredictionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.PredictionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish prediction event to Kafka", "prediction_id", entry.PredictionID, "error", err)
	} else {
		logger.Log.Infow("Prediction event published to Kafka", "prediction_id", entry.PredictionID, "price", entry.PredictedPrice)
	}
}
