package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-house-predictor/internal/models"
	"github.com/sbilibin2017/gw-house-predictor/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestGetProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockProfileGetter(ctrl)

	tests := []struct {
		name          string
		authenticated bool
		mockSetup     func()
		expectedCode  int
		expectedBody  *ProfileResponse
	}{
		{
			name:          "success",
			authenticated: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					GetProfile(gomock.Any(), "jane@example.com").
					Return(&models.UserDB{
						UserID: testUser.UserID,
						Name:   "Jane Doe",
						Email:  "jane@example.com",
						Phone:  "0711234567",
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &ProfileResponse{
				Name:  "Jane Doe",
				Email: "jane@example.com",
				Phone: "0711234567",
			},
		},
		{
			name:          "not authenticated",
			authenticated: false,
			mockSetup:     func() {},
			expectedCode:  http.StatusUnauthorized,
		},
		{
			name:          "record gone",
			authenticated: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					GetProfile(gomock.Any(), "jane@example.com").
					Return(nil, services.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:          "internal error",
			authenticated: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					GetProfile(gomock.Any(), "jane@example.com").
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var req *http.Request
			if tt.authenticated {
				req = authedRequest(http.MethodGet, "/profile", nil)
			} else {
				req = httptest.NewRequest(http.MethodGet, "/profile", nil)
			}
			w := httptest.NewRecorder()

			handler := NewGetProfileHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedBody != nil {
				var respBody ProfileResponse
				err := json.Unmarshal(w.Body.Bytes(), &respBody)
				assert.NoError(t, err)
				assert.Equal(t, *tt.expectedBody, respBody)
			}
		})
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockProfileUpdater(ctrl)

	tests := []struct {
		name          string
		authenticated bool
		inputBody     interface{}
		mockSetup     func()
		expectedCode  int
		expectedBody  *ProfileResponse
	}{
		{
			name:          "success",
			authenticated: true,
			inputBody: UpdateProfileRequest{
				Name:  "Jane Smith",
				Phone: "0779876543",
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateProfile(gomock.Any(), "jane@example.com", "Jane Smith", "0779876543").
					Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &ProfileResponse{
				Name:  "Jane Smith",
				Email: "jane@example.com",
				Phone: "0779876543",
			},
		},
		{
			name:          "not authenticated",
			authenticated: false,
			inputBody:     UpdateProfileRequest{Name: "Jane Smith", Phone: "0779876543"},
			mockSetup:     func() {},
			expectedCode:  http.StatusUnauthorized,
		},
		{
			name:          "invalid JSON",
			authenticated: true,
			inputBody:     "{invalid json}",
			mockSetup:     func() {},
			expectedCode:  http.StatusBadRequest,
		},
		{
			name:          "missing name",
			authenticated: true,
			inputBody:     UpdateProfileRequest{Name: "", Phone: "0779876543"},
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateProfile(gomock.Any(), "jane@example.com", "", "0779876543").
					Return(&services.ValidationError{Field: "name", Reason: "required"})
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:          "internal error",
			authenticated: true,
			inputBody:     UpdateProfileRequest{Name: "Jane Smith", Phone: "0779876543"},
			mockSetup: func() {
				mockSvc.EXPECT().
					UpdateProfile(gomock.Any(), "jane@example.com", "Jane Smith", "0779876543").
					Return(errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			var req *http.Request
			if tt.authenticated {
				req = authedRequest(http.MethodPut, "/profile", bytes.NewReader(bodyBytes))
			} else {
				req = httptest.NewRequest(http.MethodPut, "/profile", bytes.NewReader(bodyBytes))
			}
			w := httptest.NewRecorder()

			handler := NewUpdateProfileHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedBody != nil {
				var respBody ProfileResponse
				err := json.Unmarshal(w.Body.Bytes(), &respBody)
				assert.NoError(t, err)
				assert.Equal(t, *tt.expectedBody, respBody)
			}
		})
	}
}
