// Package catalog содержит бизнес-логику справочника авто:
// марки, модели и годы выпуска с кешированием списков.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// ErrNameTaken возвращается при переименовании в уже занятое имя.
var ErrNameTaken = errors.New("name already taken")

const (
	cacheTTL        = time.Hour
	brandsCacheKey  = "catalog:brands"
	modelsCachePref = "catalog:models:"
	yearsCachePref  = "catalog:years:"
)

// Repository определяет методы каталога в хранилище.
type Repository interface {
	ListBrands(ctx context.Context) ([]*models.Brand, error)
	GetBrand(ctx context.Context, brandID int) (*models.Brand, error)
	GetBrandByName(ctx context.Context, name string) (*models.Brand, error)
	CreateBrand(ctx context.Context, name string) (int, error)
	RenameBrand(ctx context.Context, oldName, newName string) (*models.Brand, error)
	DeleteBrandCascade(ctx context.Context, brandID int) error
	SearchBrands(ctx context.Context, name string) ([]*models.Brand, error)

	ListModels(ctx context.Context, brandID int) ([]*models.Model, error)
	GetModel(ctx context.Context, modelID int) (*models.Model, error)
	GetModelByName(ctx context.Context, brandID int, name string) (*models.Model, error)
	CreateModel(ctx context.Context, brandID int, name string) (int, error)
	RenameModel(ctx context.Context, modelID int, newName string) (*models.Model, error)
	DeleteModelCascade(ctx context.Context, modelID int) error
	SearchModels(ctx context.Context, name string) ([]*models.Model, error)

	ListYears(ctx context.Context, modelID int) ([]*models.Year, error)
	GetYear(ctx context.Context, yearID int) (*models.Year, error)
	GetYearByValue(ctx context.Context, modelID, value int) (*models.Year, error)
	CreateYear(ctx context.Context, modelID, value int) (int, error)
	UpdateYear(ctx context.Context, yearID, newValue int) (*models.Year, error)
	DeleteYear(ctx context.Context, yearID int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику каталога, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListBrands возвращает все марки, используя кеш или хранилище.
func (s *Service) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	var cached []*models.Brand
	found, err := s.cache.Get(brandsCacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(brandsCacheKey, brands, cacheTTL); err != nil {
		s.log.Warn("failed to cache brands", sl.Err(err))
	}
	return brands, nil
}

// AddBrands добавляет марки пакетом. Существующие имена пропускаются,
// по каждому имени возвращается статус.
func (s *Service) AddBrands(ctx context.Context, names []string) ([]models.BatchResult, error) {
	results := make([]models.BatchResult, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		existing, err := s.repo.GetBrandByName(ctx, name)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			results = append(results, models.BatchResult{Name: name, Status: "exists", ID: existing.ID})
			continue
		}

		id, err := s.repo.CreateBrand(ctx, name)
		if err != nil {
			return nil, err
		}
		results = append(results, models.BatchResult{Name: name, Status: "created", ID: id})
	}

	s.invalidateBrands()
	s.log.Info("brands batch processed", slog.Int("count", len(results)))
	return results, nil
}

// RenameBrand переименовывает марку. Занятое целевое имя — конфликт.
func (s *Service) RenameBrand(ctx context.Context, oldName, newName string) (*models.Brand, error) {
	if _, err := s.repo.GetBrandByName(ctx, newName); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	brand, err := s.repo.RenameBrand(ctx, oldName, newName)
	if err != nil {
		return nil, err
	}

	s.invalidateBrands()
	return brand, nil
}

// DeleteBrand удаляет марку каскадом вместе с моделями и годами.
// Модели собираются до удаления, чтобы сбросить кеш годов каждой из них.
func (s *Service) DeleteBrand(ctx context.Context, brandID int) error {
	brandModels, err := s.repo.ListModels(ctx, brandID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteBrandCascade(ctx, brandID); err != nil {
		return err
	}

	s.invalidateBrands()
	s.invalidateModels(brandID)
	for _, m := range brandModels {
		s.invalidateYears(m.ID)
	}
	s.log.Info("brand deleted with cascade", slog.Int("brand_id", brandID))
	return nil
}

// SearchBrands ищет марки по подстроке.
func (s *Service) SearchBrands(ctx context.Context, query string) ([]*models.Brand, error) {
	return s.repo.SearchBrands(ctx, strings.TrimSpace(query))
}

// ListModels возвращает модели марки, используя кеш или хранилище.
func (s *Service) ListModels(ctx context.Context, brandID int) ([]*models.Model, error) {
	if _, err := s.repo.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}

	cacheKey := modelsCachePref + strconv.Itoa(brandID)
	var cached []*models.Model
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListModels(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache models", sl.Err(err))
	}
	return result, nil
}

// AddModels добавляет модели марки пакетом.
func (s *Service) AddModels(ctx context.Context, brandID int, names []string) ([]models.BatchResult, error) {
	if _, err := s.repo.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}

	results := make([]models.BatchResult, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		existing, err := s.repo.GetModelByName(ctx, brandID, name)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			results = append(results, models.BatchResult{Name: name, Status: "exists", ID: existing.ID})
			continue
		}

		id, err := s.repo.CreateModel(ctx, brandID, name)
		if err != nil {
			return nil, err
		}
		results = append(results, models.BatchResult{Name: name, Status: "created", ID: id})
	}

	s.invalidateModels(brandID)
	return results, nil
}

// RenameModel переименовывает модель. Имя должно быть свободно в рамках марки.
func (s *Service) RenameModel(ctx context.Context, modelID int, newName string) (*models.Model, error) {
	model, err := s.repo.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetModelByName(ctx, model.BrandID, newName); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	renamed, err := s.repo.RenameModel(ctx, modelID, newName)
	if err != nil {
		return nil, err
	}

	s.invalidateModels(model.BrandID)
	return renamed, nil
}

// DeleteModel удаляет модель каскадом вместе с годами.
func (s *Service) DeleteModel(ctx context.Context, modelID int) error {
	model, err := s.repo.GetModel(ctx, modelID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteModelCascade(ctx, modelID); err != nil {
		return err
	}

	s.invalidateModels(model.BrandID)
	s.invalidateYears(modelID)
	return nil
}

// SearchModels ищет модели по подстроке.
func (s *Service) SearchModels(ctx context.Context, query string) ([]*models.Model, error) {
	return s.repo.SearchModels(ctx, strings.TrimSpace(query))
}

// ListYears возвращает годы выпуска модели, используя кеш или хранилище.
func (s *Service) ListYears(ctx context.Context, modelID int) ([]*models.Year, error) {
	if _, err := s.repo.GetModel(ctx, modelID); err != nil {
		return nil, err
	}

	cacheKey := yearsCachePref + strconv.Itoa(modelID)
	var cached []*models.Year
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListYears(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache years", sl.Err(err))
	}
	return result, nil
}

// AddYears добавляет годы выпуска модели пакетом.
func (s *Service) AddYears(ctx context.Context, modelID int, values []int) ([]models.BatchResult, error) {
	if _, err := s.repo.GetModel(ctx, modelID); err != nil {
		return nil, err
	}

	results := make([]models.BatchResult, 0, len(values))
	for _, value := range values {
		name := strconv.Itoa(value)

		existing, err := s.repo.GetYearByValue(ctx, modelID, value)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			results = append(results, models.BatchResult{Name: name, Status: "exists", ID: existing.ID})
			continue
		}

		id, err := s.repo.CreateYear(ctx, modelID, value)
		if err != nil {
			return nil, err
		}
		results = append(results, models.BatchResult{Name: name, Status: "created", ID: id})
	}

	s.invalidateYears(modelID)
	return results, nil
}

// UpdateYear меняет значение года выпуска.
func (s *Service) UpdateYear(ctx context.Context, yearID, newValue int) (*models.Year, error) {
	year, err := s.repo.GetYear(ctx, yearID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetYearByValue(ctx, year.ModelID, newValue); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	updated, err := s.repo.UpdateYear(ctx, yearID, newValue)
	if err != nil {
		return nil, err
	}

	s.invalidateYears(year.ModelID)
	return updated, nil
}

// DeleteYear удаляет год выпуска вместе с файлами.
func (s *Service) DeleteYear(ctx context.Context, yearID int) error {
	year, err := s.repo.GetYear(ctx, yearID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteYear(ctx, yearID); err != nil {
		return err
	}

	s.invalidateYears(year.ModelID)
	return nil
}

func (s *Service) invalidateBrands() {
	if err := s.cache.Invalidate(brandsCacheKey); err != nil {
		s.log.Warn("failed to invalidate brands cache", sl.Err(err))
	}
}

func (s *Service) invalidateModels(brandID int) {
	key := modelsCachePref + strconv.Itoa(brandID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate models cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service) invalidateYears(modelID int) {
	key := fmt.Sprintf("%s%d", yearsCachePref, modelID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate years cache", slog.String("key", key), sl.Err(err))
	}
}
