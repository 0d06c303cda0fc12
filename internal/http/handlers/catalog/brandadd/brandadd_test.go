package brandadd

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

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// MockService реализует интерфейс brandadd.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddBrands(ctx context.Context, names []string) ([]models.BatchResult, error) {
	args := m.Called(ctx, names)
	if res := args.Get(0); res != nil {
		return res.([]models.BatchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestBrandAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное добавление с пропуском существующей",
			body: `{"brands":["BMW","Audi"]}`,
			setupMock: func(m *MockService) {
				m.On("AddBrands", mock.Anything, []string{"BMW", "Audi"}).
					Return([]models.BatchResult{
						{Name: "BMW", Status: "created", ID: 1},
						{Name: "Audi", Status: "exists", ID: 2},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"exists"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "пустой массив",
			body:           `{"brands":[]}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"brands":["BMW"]}`,
			setupMock: func(m *MockService) {
				m.On("AddBrands", mock.Anything, []string{"BMW"}).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"could not add brands"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/catalog/brands", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
