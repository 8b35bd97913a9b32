package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-house-predictor/internal/middlewares"
	"github.com/stretchr/testify/assert"
)

var testUser = &middlewares.AuthUser{
	UserID: uuid.MustParse("7b2de2f8-2f5e-4b3d-9c1a-0d6f4a1e8c33"),
	Email:  "jane@example.com",
}

// authedRequest builds a request carrying the identity the auth middleware
// would have set.
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middlewares.ContextWithUser(req.Context(), testUser))
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLogouter(ctrl)

	tests := []struct {
		name          string
		authenticated bool
		mockSetup     func()
		expectedCode  int
	}{
		{
			name:          "success",
			authenticated: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Logout(gomock.Any(), "jane@example.com").
					Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:          "not authenticated",
			authenticated: false,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnauthorized,
		},
		{
			name:          "internal error",
			authenticated: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Logout(gomock.Any(), "jane@example.com").
					Return(errors.New("redis down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var req *http.Request
			if tt.authenticated {
				req = authedRequest(http.MethodPost, "/logout", nil)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/logout", nil)
			}
			w := httptest.NewRecorder()

			handler := NewLogoutHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
