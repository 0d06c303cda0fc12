package brandremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// MockService реализует интерфейс brandremove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) DeleteBrand(ctx context.Context, brandID int) error {
	return m.Called(ctx, brandID).Error(0)
}

func TestBrandRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		urlParam       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное удаление",
			urlParam: "12",
			setupMock: func(m *MockService) {
				m.On("DeleteBrand", mock.Anything, 12).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "некорректный id в URL",
			urlParam:       "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid brand id"`,
		},
		{
			name:     "марка не найдена",
			urlParam: "99",
			setupMock: func(m *MockService) {
				m.On("DeleteBrand", mock.Anything, 99).Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"brand not found"`,
		},
		{
			name:     "ошибка сервиса",
			urlParam: "12",
			setupMock: func(m *MockService) {
				m.On("DeleteBrand", mock.Anything, 12).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not delete brand"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/catalog/brands/"+tt.urlParam, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("brandID", tt.urlParam)
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
