// Package models содержит доменные структуры сервиса: пользователей,
// администраторов, подписки, каталог авто и файлы с медиа-контентом.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет пользователя Telegram, известного сервису.
// UserID — канонический числовой идентификатор из Telegram; он шире
// безопасного диапазона JavaScript, поэтому сериализуется строкой.
type User struct {
	UserID    int64     `json:"user_id,string"`     // Канонический идентификатор Telegram
	Username  *string   `json:"username,omitempty"` // Username без @ (может отсутствовать)
	Name      *string   `json:"name,omitempty"`     // Отображаемое имя
	CreatedAt time.Time `json:"created_at"`         // Дата первой регистрации
}

// LoginRequest принимает данные входа из JSON-запроса.
// TelegramInput — либо числовой ID, либо @username.
type LoginRequest struct {
	TelegramInput string `json:"telegram_input" validate:"required"`
	Name          string `json:"name,omitempty" validate:"omitempty,max=100"`
}

// UpdateUserRequest принимает изменяемые поля профиля пользователя.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=5,max=32"`
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
}

// Pagination описывает метаданные постраничного вывода.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}
