package models

// Brand — марка автомобиля, корень иерархии каталога.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Model — модель автомобиля, принадлежит марке.
type Model struct {
	ID      int    `json:"id"`
	BrandID int    `json:"brand_id"`
	Name    string `json:"name"`
}

// Year — год выпуска модели, лист иерархии каталога.
type Year struct {
	ID      int `json:"id"`
	ModelID int `json:"model_id"`
	Value   int `json:"value"`
}

// BatchResult — результат массового добавления или удаления по именам.
type BatchResult struct {
	Name   string `json:"name"`
	Status string `json:"status"` // created, exists, deleted, not_found
	ID     int    `json:"id,omitempty"`
}

// AddBrandsRequest принимает массив марок для добавления.
type AddBrandsRequest struct {
	Brands []string `json:"brands" validate:"required,min=1,dive,required"`
}

// UpdateBrandRequest принимает переименование марки.
type UpdateBrandRequest struct {
	OldName string `json:"old_name" validate:"required"`
	NewName string `json:"new_name" validate:"required"`
}

// AddModelsRequest принимает массив моделей для марки.
type AddModelsRequest struct {
	BrandID int      `json:"brand_id" validate:"required,gt=0"`
	Models  []string `json:"models" validate:"required,min=1,dive,required"`
}

// UpdateModelRequest принимает переименование модели.
type UpdateModelRequest struct {
	ModelID int    `json:"model_id" validate:"required,gt=0"`
	NewName string `json:"new_name" validate:"required"`
}

// AddYearsRequest принимает массив годов выпуска для модели.
type AddYearsRequest struct {
	ModelID int   `json:"model_id" validate:"required,gt=0"`
	Years   []int `json:"years" validate:"required,min=1,dive,gt=1800"`
}

// UpdateYearRequest принимает новое значение года.
type UpdateYearRequest struct {
	YearID   int `json:"year_id" validate:"required,gt=0"`
	NewValue int `json:"new_value" validate:"required,gt=1800"`
}
