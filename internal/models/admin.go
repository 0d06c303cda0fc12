package models

import "time"

// AdminGrant фиксирует административные права пользователя.
// На одного пользователя существует не более одной записи.
type AdminGrant struct {
	UserID    int64     `json:"user_id,string"`  // Кому выданы права
	IsSuper   bool      `json:"is_super"`        // Супер-админ: может выдавать и отзывать права
	GrantedBy int64     `json:"added_by,string"` // Кто выдал права
	GrantedAt time.Time `json:"added_at"`        // Когда выданы права
}

// AdminGrantInfo — запись о правах вместе с данными пользователя
// и выдавшего администратора, для списков в админке.
type AdminGrantInfo struct {
	AdminGrant
	Username          *string `json:"username,omitempty"`
	Name              *string `json:"name,omitempty"`
	GrantedByUsername *string `json:"added_by_username,omitempty"`
}

// GrantAdminRequest принимает данные на выдачу прав из JSON-запроса.
type GrantAdminRequest struct {
	TelegramInput string `json:"telegram_input" validate:"required"`
	IsSuper       bool   `json:"is_super,omitempty"`
}
