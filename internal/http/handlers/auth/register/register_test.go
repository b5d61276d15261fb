package register

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

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, email, password string) (*models.UserOut, error) {
	args := m.Called(ctx, username, email, password)
	if res := args.Get(0); res != nil {
		return res.(*models.UserOut), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"alice","email":"alice@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret123").
					Return(&models.UserOut{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"alice"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "короткий пароль не проходит валидацию",
			body:           `{"username":"alice","email":"alice@example.com","password":"123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "некорректный email",
			body:           `{"username":"alice","email":"not-an-email","password":"secret123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name: "дубликат пользователя",
			body: `{"username":"alice","email":"alice@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret123").
					Return(nil, models.ErrUserExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"username already registered"`,
		},
		{
			name: "внутренняя ошибка сервиса",
			body: `{"username":"alice","email":"alice@example.com","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret123").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
