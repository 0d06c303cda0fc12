package models

// Slot — одна из четырёх фиксированных позиций контента у года выпуска.
type Slot string

// Возможные слоты файла.
const (
	SlotPhoto        Slot = "photo"
	SlotPremiumPhoto Slot = "premium_photo"
	SlotPdf          Slot = "pdf"
	SlotPremiumPdf   Slot = "premium_pdf"
)

// Valid сообщает, что строка слота — одно из четырёх допустимых значений.
func (s Slot) Valid() bool {
	switch s {
	case SlotPhoto, SlotPremiumPhoto, SlotPdf, SlotPremiumPdf:
		return true
	}
	return false
}

// IsPremium сообщает, что слот доступен только премиум-пользователям.
func (s Slot) IsPremium() bool {
	return s == SlotPremiumPhoto || s == SlotPremiumPdf
}

// IsPhoto сообщает, что слот содержит изображение, а не документ.
func (s Slot) IsPhoto() bool {
	return s == SlotPhoto || s == SlotPremiumPhoto
}

// File — запись с медиа-контентом года выпуска. У каждого года не более
// одной записи; четыре слота хранят внешние ссылки Google Drive.
type File struct {
	ID           int     `json:"id"`
	YearID       int     `json:"year_id"`
	Photo        *string `json:"photo,omitempty"`
	PremiumPhoto *string `json:"premium_photo,omitempty"`
	Pdf          *string `json:"pdf,omitempty"`
	PremiumPdf   *string `json:"premium_pdf,omitempty"`
	Caption      *string `json:"caption,omitempty"`
}

// SlotValue возвращает содержимое указанного слота.
func (f *File) SlotValue(s Slot) *string {
	switch s {
	case SlotPhoto:
		return f.Photo
	case SlotPremiumPhoto:
		return f.PremiumPhoto
	case SlotPdf:
		return f.Pdf
	case SlotPremiumPdf:
		return f.PremiumPdf
	}
	return nil
}

// AttachSlotRequest принимает данные на добавление контента в слот.
type AttachSlotRequest struct {
	YearID         int    `json:"year_id" validate:"required,gt=0"`
	Slot           string `json:"slot" validate:"required,oneof=photo premium_photo pdf premium_pdf"`
	GoogleDriveURL string `json:"google_drive_url" validate:"required,url"`
}

// UpdateCaptionRequest принимает новое описание файла.
type UpdateCaptionRequest struct {
	Caption string `json:"caption" validate:"required,max=1000"`
}

// YearFiles — ответ на запрос файлов года: контекст иерархии
// плюс файлы с видимыми запрашивающему слотами.
type YearFiles struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Files []File `json:"files"`
}
