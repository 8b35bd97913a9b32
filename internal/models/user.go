package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`      // Primary key
	Name         string    `json:"name" db:"name"`            // Display name
	Email        string    `json:"email" db:"email"`          // Unique email, also the session pointer key
	Phone        string    `json:"phone" db:"phone"`          // Contact phone
	PasswordHash string    `json:"-" db:"password_hash"`      // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
