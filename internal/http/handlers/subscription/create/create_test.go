package create

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/magazine-subscription/internal/http/middlewarectx"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID int, req models.DummySubscription) (*models.Subscription, error) {
	args := m.Called(ctx, userID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"magazine_id":3,"plan_id":5,"renewal_date":"2026-09-01"}`
	validReq := models.DummySubscription{MagazineID: 3, PlanID: 5, RenewalDate: "2026-09-01"}

	tests := []struct {
		name           string
		body           string
		userID         any
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное оформление подписки",
			body:   validBody,
			userID: 1,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 1, validReq).Return(&models.Subscription{
					ID: 42, UserID: 1, MagazineID: 3, PlanID: 5,
					Price:       400,
					RenewalDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
					IsActive:    true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"price":400`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           validBody,
			userID:         nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "некорректная дата продления",
			body:           `{"magazine_id":3,"plan_id":5,"renewal_date":"01-09-2026"}`,
			userID:         1,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:   "дубликат активной подписки",
			body:   validBody,
			userID: 1,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 1, validReq).
					Return(nil, models.ErrSubscriptionExists)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"active subscription already exists"`,
		},
		{
			name:   "журнал не найден",
			body:   validBody,
			userID: 1,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 1, validReq).
					Return(nil, models.ErrMagazineNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"magazine not found"`,
		},
		{
			name:   "нулевая цена после скидки",
			body:   validBody,
			userID: 1,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, 1, validReq).
					Return(nil, models.ErrInvalidPrice)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"calculated price must be positive"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions/", strings.NewReader(tt.body))
			if tt.userID != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
