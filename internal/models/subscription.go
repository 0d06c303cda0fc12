package models

import "time"

// SubscriptionStatusActive — статус действующей подписки.
const SubscriptionStatusActive = "active"

// Subscription представляет премиум-подписку пользователя.
// Окно действия — [SubStart, SubEnd]; граница SubEnd включительно.
type Subscription struct {
	ID           int       `json:"id"`
	UserID       int64     `json:"user_id,string"`
	SubStart     time.Time `json:"sub_start"`
	SubEnd       time.Time `json:"sub_end"`
	PeriodMonths int       `json:"period_months"`
	Status       string    `json:"status"`
}

// PurchaseRequest принимает данные покупки или продления подписки.
// Продление перезаписывает окно действия, а не складывает его.
type PurchaseRequest struct {
	UserID       int64 `json:"user_id,string" validate:"required,gt=0"`
	PeriodMonths int   `json:"period_months" validate:"required,gt=0"`
}

// PurchaseSelfRequest принимает период покупки подписки для себя.
type PurchaseSelfRequest struct {
	PeriodMonths int `json:"period_months" validate:"required,gt=0"`
}

// PriceTier задаёт цену подписки за период в месяцах.
// Цена хранится в копейках, чтобы не использовать плавающую точку.
type PriceTier struct {
	PeriodMonths int   `json:"period_months"`
	PriceKopecks int64 `json:"price_kopecks"`
}

// UpdatePriceRequest принимает новую цену тарифа из JSON-запроса.
type UpdatePriceRequest struct {
	PriceKopecks int64 `json:"price_kopecks" validate:"required,gt=0"`
}

// ExpiredNotification — сообщение об истёкшей подписке,
// публикуемое в очередь уведомлений.
type ExpiredNotification struct {
	MessageID string    `json:"message_id"`
	UserID    int64     `json:"user_id,string"`
	SubEnd    time.Time `json:"sub_end"`
}
