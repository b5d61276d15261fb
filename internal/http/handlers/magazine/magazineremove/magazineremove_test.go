package magazineremove

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// MockService реализует интерфейс magazineremove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) RemoveMagazine(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func TestMagazineRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlID          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное удаление журнала",
			urlID: "3",
			setupMock: func(m *MockService) {
				m.On("RemoveMagazine", mock.Anything, 3).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"magazine removed successfully"`,
		},
		{
			name:  "журнал не найден",
			urlID: "99",
			setupMock: func(m *MockService) {
				m.On("RemoveMagazine", mock.Anything, 99).Return(models.ErrMagazineNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"magazine not found"`,
		},
		{
			name:  "журнал с активными подписками",
			urlID: "3",
			setupMock: func(m *MockService) {
				m.On("RemoveMagazine", mock.Anything, 3).Return(models.ErrCatalogInUse)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"magazine has active subscriptions"`,
		},
		{
			name:           "некорректный id в URL",
			urlID:          "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid magazine id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/magazines/"+tt.urlID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.urlID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
