package models

import "time"

// AccessStat — строка журнала обращений к файлам каталога.
// Журнал только пополняется и используется для агрегированных отчётов.
type AccessStat struct {
	UserID     int64     `json:"user_id,string"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	FileID     int       `json:"file_id"`
	AccessedAt time.Time `json:"accessed_at"`
}

// Stats — сводная статистика для админки.
type Stats struct {
	TotalUsers   int `json:"total_users"`
	PremiumUsers int `json:"premium_users"`
	RegularUsers int `json:"regular_users"`
	BrandsCount  int `json:"brands_count"`
	ModelsCount  int `json:"models_count"`
	YearsCount   int `json:"years_count"`
}

// TopModel — позиция в рейтинге моделей по количеству обращений.
type TopModel struct {
	Rank        int    `json:"rank"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	AccessCount int    `json:"access_count"`
}

// Setting — настройка бота вида ключ-значение.
type Setting struct {
	Key   string `json:"setting_key"`
	Value string `json:"setting_value"`
}

// UpdateSettingRequest принимает новое значение настройки.
type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required"`
}
