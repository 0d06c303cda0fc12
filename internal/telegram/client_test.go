package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantNumeric bool
		wantErr     bool
	}{
		{name: "числовой идентификатор", input: "555000111", want: "555000111", wantNumeric: true},
		{name: "username с собакой", input: "@car_lover", want: "car_lover"},
		{name: "username без собаки", input: "car_lover", want: "car_lover"},
		{name: "пробелы по краям", input: "  555000111  ", want: "555000111", wantNumeric: true},
		{name: "слишком короткий username", input: "@abc", wantErr: true},
		{name: "недопустимые символы", input: "@so-so!", wantErr: true},
		{name: "пустой ввод", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, numeric, err := NormalizeInput(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantNumeric, numeric)
		})
	}
}

func TestClient_GetChatByUsername(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
		wantID  int64
	}{
		{
			name: "личный аккаунт",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"ok":true,"result":{"id":555000111,"type":"private","username":"car_lover","first_name":"Ivan"}}`)
			},
			wantID: 555000111,
		},
		{
			name: "канал вместо пользователя",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"ok":true,"result":{"id":-100123,"type":"channel","username":"car_news"}}`)
			},
			wantErr: ErrNotPrivate,
		},
		{
			name: "пользователь не найден",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "скрытый профиль",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"ok":false,"error_code":403,"description":"Forbidden"}`)
			},
			wantErr: ErrLookupFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient("test-token", srv.URL)
			chat, err := client.GetChatByUsername(context.Background(), "car_lover")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, chat.ID)
		})
	}
}

func TestClient_GetChatByUsername_NoToken(t *testing.T) {
	client := NewClient("", "")
	_, err := client.GetChatByUsername(context.Background(), "car_lover")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestDisplayName(t *testing.T) {
	first := "Ivan"
	last := "Petrov"

	got := DisplayName(&Chat{FirstName: &first, LastName: &last})
	require.NotNil(t, got)
	assert.Equal(t, "Ivan Petrov", *got)

	got = DisplayName(&Chat{FirstName: &first})
	require.NotNil(t, got)
	assert.Equal(t, "Ivan", *got)

	assert.Nil(t, DisplayName(&Chat{}))
}
