package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if res := args.Get(0); res != nil {
		return res.(*models.TokenPair), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"username":"alice","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "secret123").
					Return(&models.TokenPair{
						AccessToken:  "access.jwt",
						RefreshToken: "refresh.jwt",
						TokenType:    "bearer",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token":"access.jwt"`,
		},
		{
			name: "неверные учетные данные",
			body: `{"username":"alice","password":"wrong_pass"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "wrong_pass").
					Return(nil, models.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid credentials"`,
		},
		{
			name: "неактивный пользователь",
			body: `{"username":"alice","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "secret123").
					Return(nil, models.ErrUserDisabled)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"inactive user"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username"`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "внутренняя ошибка сервиса",
			body: `{"username":"alice","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "secret123").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to login"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
