package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
)

// ErrSessionNotFound is returned when no session pointer exists for an email.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository holds the session pointer for each logged-in user in
// Redis: key "session:<email>" maps to the id of the token issued at login.
// Logout and account deletion remove the key, which invalidates every token
// issued before it.
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration // session lifetime, aligned with token expiry
}

func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(email string) string {
	return fmt.Sprintf("session:%s", email)
}

// Set points the session at the given token id.
func (r *SessionRepository) Set(ctx context.Context, email, tokenID string) error {
	key := sessionKey(email)
	err := r.client.Set(ctx, key, tokenID, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"token_id", tokenID,
		"error", err,
	)

	return err
}

// Get returns the token id the session currently points at.
func (r *SessionRepository) Get(ctx context.Context, email string) (string, error) {
	key := sessionKey(email)

	val, err := r.client.Get(ctx, key).Result()

	logger.Log.Infow(
		"key", key,
		"result", val,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	return val, nil
}

// Delete clears the session pointer. Deleting an absent key is not an error.
func (r *SessionRepository) Delete(ctx context.Context, email string) error {
	key := sessionKey(email)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"error", err,
	)

	return err
}
