package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
)

// PredictionWriteRepository writes and deletes saved predictions. Each
// prediction is its own row keyed by a generated id, so a save never rewrites
// other entries and concurrent saves cannot lose each other.
type PredictionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPredictionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PredictionWriteRepository {
	return &PredictionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new prediction row.
func (r *PredictionWriteRepository) Save(ctx context.Context, p models.PredictionDB) error {
	query := `
		INSERT INTO predictions (
			prediction_id, user_id, predicted_price,
			bedrooms, grade, has_basement, living_in_m2, renovated,
			nice_view, perfect_condition, real_bathrooms, has_lavatory,
			single_floor, month, quartile_zone, year, created_at
		)
		VALUES (
			:prediction_id, :user_id, :predicted_price,
			:bedrooms, :grade, :has_basement, :living_in_m2, :renovated,
			:nice_view, :perfect_condition, :real_bathrooms, :has_lavatory,
			:single_floor, :month, :quartile_zone, :year, NOW()
		)
	`

	var err error
	if tx := r.tx(ctx); tx != nil {
		_, err = tx.NamedExecContext(ctx, query, p)
	} else {
		_, err = r.db.NamedExecContext(ctx, query, p)
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{p.PredictionID, p.UserID, p.PredictedPrice},
		"error", err,
	)

	return err
}

// Delete removes a single prediction owned by the given user. Removing an
// absent id affects zero rows and is not an error.
func (r *PredictionWriteRepository) Delete(ctx context.Context, userID, predictionID uuid.UUID) error {
	query := `DELETE FROM predictions WHERE user_id = $1 AND prediction_id = $2`

	res, err := r.executor(ctx).ExecContext(ctx, query, userID, predictionID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", []any{userID, predictionID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// DeleteAllByUser wipes every prediction of the given user. Used by account
// deletion.
func (r *PredictionWriteRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM predictions WHERE user_id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

func (r *PredictionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if tx := r.tx(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *PredictionWriteRepository) tx(ctx context.Context) *sqlx.Tx {
	if r.txGetter == nil {
		return nil
	}
	return r.txGetter(ctx)
}

// PredictionReadRepository lists saved predictions.
type PredictionReadRepository struct {
	db *sqlx.DB
}

func NewPredictionReadRepository(db *sqlx.DB) *PredictionReadRepository {
	return &PredictionReadRepository{db: db}
}

// ListByUserID returns the user's predictions in the order they were saved.
func (r *PredictionReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.PredictionDB, error) {
	const query = `
		SELECT prediction_id, user_id, predicted_price,
		       bedrooms, grade, has_basement, living_in_m2, renovated,
		       nice_view, perfect_condition, real_bathrooms, has_lavatory,
		       single_floor, month, quartile_zone, year, created_at
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at, prediction_id
	`

	predictions := make([]models.PredictionDB, 0)
	err := r.db.SelectContext(ctx, &predictions, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(predictions),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return predictions, nil
}
