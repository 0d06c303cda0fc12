package grantcreate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/auto-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/services/admin"
	"github.com/magabrotheeeer/auto-catalog/internal/telegram"
)

// MockService реализует интерфейс grantcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GrantAdmin(ctx context.Context, input string, isSuper bool, grantedBy int64) (*models.AdminGrant, error) {
	args := m.Called(ctx, input, isSuper, grantedBy)
	if res := args.Get(0); res != nil {
		return res.(*models.AdminGrant), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGrantCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная выдача прав",
			body: `{"telegram_input":"@someuser","is_super":true}`,
			setupMock: func(m *MockService) {
				m.On("GrantAdmin", mock.Anything, "@someuser", true, int64(1)).
					Return(&models.AdminGrant{UserID: 42, IsSuper: true, GrantedBy: 1}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"is_super":true`,
		},
		{
			name:           "пустой идентификатор",
			body:           `{"telegram_input":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `required field`,
		},
		{
			name: "пользователь не найден",
			body: `{"telegram_input":"@someuser"}`,
			setupMock: func(m *MockService) {
				m.On("GrantAdmin", mock.Anything, "@someuser", false, int64(1)).
					Return(nil, telegram.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"telegram user not found"`,
		},
		{
			name: "права уже выданы",
			body: `{"telegram_input":"555"}`,
			setupMock: func(m *MockService) {
				m.On("GrantAdmin", mock.Anything, "555", false, int64(1)).
					Return(nil, admin.ErrAlreadyAdmin)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"user is already an admin"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/admin/grants", strings.NewReader(tt.body))
			ctx := context.WithValue(req.Context(), middlewarectx.User, &models.User{UserID: 1})
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
