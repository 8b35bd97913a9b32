package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-house-predictor/internal/logger"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.UserDB) error
	Delete(ctx context.Context, email string) error
}

// SessionStore holds the session pointer for each logged-in user.
type SessionStore interface {
	Set(ctx context.Context, email, tokenID string) error
	Delete(ctx context.Context, email string) error
}

// PredictionWiper removes every saved prediction of a user. It belongs to the
// prediction store but account deletion wipes predictions too, so the auth
// service needs this one operation.
type PredictionWiper interface {
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, email string) (token string, tokenID string, err error)
}

// AuthService handles registration, login, sessions, and the user profile.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	sessions    SessionStore
	predictions PredictionWiper
	jwt         JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	sessions SessionStore,
	predictions PredictionWiper,
	jwt JWTGenerator,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		sessions:    sessions,
		predictions: predictions,
		jwt:         jwt,
	}
}

// Register creates a new user. The store overwrites silently, so uniqueness
// is enforced here with an existence check before the write.
func (svc *AuthService) Register(ctx context.Context, name, email, phone, password string) error {
	if name == "" {
		return newRequiredFieldError("name")
	}
	if email == "" {
		return newRequiredFieldError("email")
	}
	if phone == "" {
		return newRequiredFieldError("phone")
	}
	if password == "" {
		return newRequiredFieldError("password")
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "email", email)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	user := models.UserDB{
		UserID:       uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashedPassword),
	}
	if err := svc.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	return nil
}

// Login authenticates a user, points the session at the new token, and
// returns the token. A missing user and a wrong password both produce
// ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("login for unknown email", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	token, tokenID, err := svc.jwt.Generate(ctx, user.UserID, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	if err := svc.sessions.Set(ctx, user.Email, tokenID); err != nil {
		logger.Log.Errorw("failed to set session pointer", "email", email, "err", err)
		return "", err
	}

	return token, nil
}

// Logout clears the session pointer. Saved predictions stay.
func (svc *AuthService) Logout(ctx context.Context, email string) error {
	if err := svc.sessions.Delete(ctx, email); err != nil {
		logger.Log.Errorw("failed to clear session pointer", "email", email, "err", err)
		return err
	}
	return nil
}

// GetProfile returns the record of the authenticated user.
func (svc *AuthService) GetProfile(ctx context.Context, email string) (*models.UserDB, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile rewrites the record with new name and phone. Both are
// required.
func (svc *AuthService) UpdateProfile(ctx context.Context, email, name, phone string) error {
	if name == "" {
		return newRequiredFieldError("name")
	}
	if phone == "" {
		return newRequiredFieldError("phone")
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}

	user.Name = name
	user.Phone = phone
	if err := svc.writer.Save(ctx, *user); err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return err
	}

	return nil
}

// DeleteAccount removes the user record, the session pointer, and all of the
// user's saved predictions.
func (svc *AuthService) DeleteAccount(ctx context.Context, email string) error {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}

	if err := svc.predictions.DeleteAllByUser(ctx, user.UserID); err != nil {
		logger.Log.Errorw("failed to wipe predictions", "email", email, "err", err)
		return err
	}
	if err := svc.writer.Delete(ctx, email); err != nil {
		logger.Log.Errorw("failed to delete user", "email", email, "err", err)
		return err
	}
	if err := svc.sessions.Delete(ctx, email); err != nil {
		logger.Log.Errorw("failed to clear session pointer", "email", email, "err", err)
		return err
	}

	return nil
}
