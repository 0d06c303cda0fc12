package login

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

	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/services/auth"
	"github.com/magabrotheeeer/auto-catalog/internal/telegram"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, input string, name *string) (*auth.LoginResult, error) {
	args := m.Called(ctx, input, name)
	if res := args.Get(0); res != nil {
		return res.(*auth.LoginResult), args.Error(1)
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
			name: "успешный вход по числовому ID",
			body: `{"telegram_input":"555000111"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "555000111", (*string)(nil)).
					Return(&auth.LoginResult{
						Token: "token-value",
						User:  &models.User{UserID: 555000111},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"token-value"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "пустой идентификатор",
			body:           `{"telegram_input":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `required field`,
		},
		{
			name: "неизвестный username",
			body: `{"telegram_input":"@someuser"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "@someuser", (*string)(nil)).
					Return(nil, telegram.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"telegram user not found"`,
		},
		{
			name: "username группы",
			body: `{"telegram_input":"@somegroup"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "@somegroup", (*string)(nil)).
					Return(nil, telegram.ErrNotPrivate)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"username does not belong to a user"`,
		},
		{
			name: "Bot API недоступен",
			body: `{"telegram_input":"@someuser"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "@someuser", (*string)(nil)).
					Return(nil, telegram.ErrLookupFailed)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `"could not resolve username via telegram"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
