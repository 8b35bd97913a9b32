package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"github.com/sbilibin2017/gw-house-predictor/internal/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(ctrl *gomock.Controller) (
	*services.AuthService,
	*services.MockUserReader,
	*services.MockUserWriter,
	*services.MockSessionStore,
	*services.MockPredictionWiper,
	*services.MockJWTGenerator,
) {
	reader := services.NewMockUserReader(ctrl)
	writer := services.NewMockUserWriter(ctrl)
	sessions := services.NewMockSessionStore(ctrl)
	predictions := services.NewMockPredictionWiper(ctrl)
	jwtGen := services.NewMockJWTGenerator(ctrl)
	svc := services.NewAuthService(reader, writer, sessions, predictions, jwtGen)
	return svc, reader, writer, sessions, predictions, jwtGen
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer, _, _, _ := newAuthService(ctrl)

	tests := []struct {
		name         string
		userName     string
		email        string
		phone        string
		password     string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:     "successful registration",
			userName: "Alice",
			email:    "alice@example.com",
			phone:    "0711234567",
			password: "pass123",
		},
		{
			name:         "user already exists",
			userName:     "Bob",
			email:        "bob@example.com",
			phone:        "0712345678",
			password:     "pass123",
			existingUser: &models.UserDB{UserID: uuid.New(), Email: "bob@example.com"},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			userName:  "Eve",
			email:     "eve@example.com",
			phone:     "0713456789",
			password:  "pass123",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			userName:  "Carol",
			email:     "carol@example.com",
			phone:     "0714567890",
			password:  "pass123",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.existingUser, tt.readerErr)

			if tt.existingUser == nil && tt.readerErr == nil {
				writer.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(tt.writerErr)
			}

			err := svc.Register(context.Background(), tt.userName, tt.email, tt.phone, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _, _ := newAuthService(ctrl)

	tests := []struct {
		name     string
		userName string
		email    string
		phone    string
		password string
		field    string
	}{
		{"missing name", "", "a@x.com", "071", "pw", "name"},
		{"missing email", "A", "", "071", "pw", "email"},
		{"missing phone", "A", "a@x.com", "", "pw", "phone"},
		{"missing password", "A", "a@x.com", "071", "", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(context.Background(), tt.userName, tt.email, tt.phone, tt.password)

			var vErr *services.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, _, sessions, _, jwtGen := newAuthService(ctrl)

	password := "secret"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userID := uuid.New()

	tests := []struct {
		name        string
		email       string
		user        *models.UserDB
		readerErr   error
		jwtErr      error
		sessionErr  error
		wantErr     error
		expectToken string
		loginPass   string
	}{
		{
			name:        "successful login",
			email:       "alice@example.com",
			user:        &models.UserDB{UserID: userID, Email: "alice@example.com", PasswordHash: string(hashed)},
			expectToken: "token123",
			loginPass:   password,
		},
		{
			name:      "user does not exist",
			email:     "ghost@example.com",
			user:      nil,
			wantErr:   services.ErrInvalidCredentials,
			loginPass: password,
		},
		{
			name:      "invalid password",
			email:     "carol@example.com",
			user:      &models.UserDB{UserID: uuid.New(), Email: "carol@example.com", PasswordHash: string(hashed)},
			wantErr:   services.ErrInvalidCredentials,
			loginPass: "wrongpass",
		},
		{
			name:      "reader error",
			email:     "eve@example.com",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
			loginPass: password,
		},
		{
			name:      "JWT generation error",
			email:     "dan@example.com",
			user:      &models.UserDB{UserID: userID, Email: "dan@example.com", PasswordHash: string(hashed)},
			jwtErr:    errors.New("jwt error"),
			wantErr:   errors.New("jwt error"),
			loginPass: password,
		},
		{
			name:       "session store error",
			email:      "erin@example.com",
			user:       &models.UserDB{UserID: userID, Email: "erin@example.com", PasswordHash: string(hashed)},
			sessionErr: errors.New("redis error"),
			wantErr:    errors.New("redis error"),
			loginPass:  password,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader.EXPECT().
				GetByEmail(gomock.Any(), tt.email).
				Return(tt.user, tt.readerErr)

			if tt.user != nil && tt.readerErr == nil && tt.loginPass == password {
				jwtGen.EXPECT().
					Generate(gomock.Any(), tt.user.UserID, tt.email).
					Return(tt.expectToken, "jti-1", tt.jwtErr)

				if tt.jwtErr == nil {
					sessions.EXPECT().
						Set(gomock.Any(), tt.email, "jti-1").
						Return(tt.sessionErr)
				}
			}

			token, err := svc.Login(context.Background(), tt.email, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectToken, token)
			}
		})
	}
}

func TestAuthService_Login_SameErrorForMissingUserAndWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, _, _, _, _ := newAuthService(ctrl)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)

	reader.EXPECT().
		GetByEmail(gomock.Any(), "nobody@example.com").
		Return(nil, nil)
	_, errMissing := svc.Login(context.Background(), "nobody@example.com", "whatever")

	reader.EXPECT().
		GetByEmail(gomock.Any(), "somebody@example.com").
		Return(&models.UserDB{UserID: uuid.New(), Email: "somebody@example.com", PasswordHash: string(hashed)}, nil)
	_, errWrong := svc.Login(context.Background(), "somebody@example.com", "wrong")

	assert.ErrorIs(t, errMissing, services.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, services.ErrInvalidCredentials)
	assert.Equal(t, errMissing.Error(), errWrong.Error())
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, sessions, _, _ := newAuthService(ctrl)

	sessions.EXPECT().Delete(gomock.Any(), "alice@example.com").Return(nil)
	assert.NoError(t, svc.Logout(context.Background(), "alice@example.com"))

	sessions.EXPECT().Delete(gomock.Any(), "alice@example.com").Return(errors.New("redis error"))
	assert.Error(t, svc.Logout(context.Background(), "alice@example.com"))
}

func TestAuthService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer, _, _, _ := newAuthService(ctrl)

	existing := &models.UserDB{
		UserID:       uuid.New(),
		Name:         "Old Name",
		Email:        "alice@example.com",
		Phone:        "0711111111",
		PasswordHash: "hash",
	}

	t.Run("rewrites record with new name and phone", func(t *testing.T) {
		reader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(existing, nil)
		writer.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user models.UserDB) error {
				assert.Equal(t, "New Name", user.Name)
				assert.Equal(t, "0722222222", user.Phone)
				assert.Equal(t, existing.Email, user.Email)
				assert.Equal(t, existing.PasswordHash, user.PasswordHash)
				return nil
			})

		err := svc.UpdateProfile(context.Background(), "alice@example.com", "New Name", "0722222222")
		assert.NoError(t, err)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := svc.UpdateProfile(context.Background(), "alice@example.com", "", "0722222222")
		var vErr *services.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
	})

	t.Run("empty phone rejected", func(t *testing.T) {
		err := svc.UpdateProfile(context.Background(), "alice@example.com", "New Name", "")
		var vErr *services.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "phone", vErr.Field)
	})
}

func TestAuthService_DeleteAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, writer, sessions, predictions, _ := newAuthService(ctrl)

	userID := uuid.New()
	user := &models.UserDB{UserID: userID, Email: "alice@example.com"}

	t.Run("wipes predictions, record, and session", func(t *testing.T) {
		reader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(user, nil)
		predictions.EXPECT().DeleteAllByUser(gomock.Any(), userID).Return(nil)
		writer.EXPECT().Delete(gomock.Any(), "alice@example.com").Return(nil)
		sessions.EXPECT().Delete(gomock.Any(), "alice@example.com").Return(nil)

		assert.NoError(t, svc.DeleteAccount(context.Background(), "alice@example.com"))
	})

	t.Run("prediction wipe failure aborts", func(t *testing.T) {
		reader.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(user, nil)
		predictions.EXPECT().DeleteAllByUser(gomock.Any(), userID).Return(errors.New("db error"))

		assert.Error(t, svc.DeleteAccount(context.Background(), "alice@example.com"))
	})
}
