// Package telegram содержит клиент Bot API для разрешения username
// в канонический числовой идентификатор пользователя.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Ошибки разрешения пользователя. Отличие ErrNoToken от ErrLookupFailed
// важно для сообщений пользователю: без токена разрешение по username
// в принципе не настроено.
var (
	ErrNoToken      = errors.New("telegram bot token is not configured")
	ErrNotFound     = errors.New("telegram user not found")
	ErrNotPrivate   = errors.New("username belongs to a group or channel, not a user")
	ErrBadInput     = errors.New("invalid telegram username or user id")
	ErrLookupFailed = errors.New("telegram lookup failed")
)

// usernameRe — синтаксис username Telegram: буквы, цифры и подчёркивания,
// длина от 5 до 32 символов.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{5,32}$`)

var numericRe = regexp.MustCompile(`^\d+$`)

// Chat — ответ метода getChat в интересующей нас части.
type Chat struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type getChatResponse struct {
	OK          bool   `json:"ok"`
	Result      *Chat  `json:"result,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// Client — клиент Telegram Bot API.
type Client struct {
	botToken   string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Bot API. Пустой токен допустим:
// в этом случае GetChatByUsername возвращает ErrNoToken.
func NewClient(botToken, apiURL string) *Client {
	if apiURL == "" {
		apiURL = "https://api.telegram.org"
	}
	return &Client{
		botToken:   botToken,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// HasToken сообщает, настроен ли токен бота.
func (c *Client) HasToken() bool {
	return c.botToken != ""
}

// GetChatByUsername запрашивает getChat по @username.
// Чаты типов group/supergroup/channel отвергаются с ErrNotPrivate:
// канонический идентификатор есть только у личных аккаунтов.
func (c *Client) GetChatByUsername(ctx context.Context, username string) (*Chat, error) {
	const op = "telegram.GetChatByUsername"
	if !c.HasToken() {
		return nil, ErrNoToken
	}

	reqURL := fmt.Sprintf("%s/bot%s/getChat?chat_id=%s",
		c.apiURL, c.botToken, url.QueryEscape("@"+username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrLookupFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var body getChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrLookupFailed, err)
	}

	if !body.OK {
		switch body.ErrorCode {
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%s: %w: malformed username", op, ErrLookupFailed)
		case http.StatusNotFound:
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case http.StatusForbidden:
			return nil, fmt.Errorf("%s: %w: profile is hidden", op, ErrLookupFailed)
		}
		return nil, fmt.Errorf("%s: %w: %s", op, ErrLookupFailed, body.Description)
	}

	if body.Result == nil || body.Result.Type != "private" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotPrivate)
	}
	return body.Result, nil
}

// NormalizeInput классифицирует пользовательский ввод: числовой ID
// возвращается как есть, username очищается от ведущего @ и проверяется
// на синтаксис. Второе значение сообщает, что ввод числовой.
func NormalizeInput(input string) (string, bool, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false, ErrBadInput
	}
	if numericRe.MatchString(trimmed) {
		return trimmed, true, nil
	}
	clean := strings.TrimPrefix(trimmed, "@")
	if !usernameRe.MatchString(clean) {
		return "", false, ErrBadInput
	}
	return clean, false, nil
}

// DisplayName собирает отображаемое имя из имени и фамилии чата.
func DisplayName(chat *Chat) *string {
	var parts []string
	if chat.FirstName != nil && *chat.FirstName != "" {
		parts = append(parts, *chat.FirstName)
	}
	if chat.LastName != nil && *chat.LastName != "" {
		parts = append(parts, *chat.LastName)
	}
	if len(parts) == 0 {
		return nil
	}
	name := strings.Join(parts, " ")
	return &name
}
