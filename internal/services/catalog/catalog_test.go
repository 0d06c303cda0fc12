package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Brand), args.Error(1)
}
func (m *RepoMock) GetBrand(ctx context.Context, brandID int) (*models.Brand, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}
func (m *RepoMock) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}
func (m *RepoMock) CreateBrand(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RenameBrand(ctx context.Context, oldName, newName string) (*models.Brand, error) {
	args := m.Called(ctx, oldName, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Brand), args.Error(1)
}
func (m *RepoMock) DeleteBrandCascade(ctx context.Context, brandID int) error {
	return m.Called(ctx, brandID).Error(0)
}
func (m *RepoMock) SearchBrands(ctx context.Context, name string) ([]*models.Brand, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Brand), args.Error(1)
}
func (m *RepoMock) ListModels(ctx context.Context, brandID int) ([]*models.Model, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Model), args.Error(1)
}
func (m *RepoMock) GetModel(ctx context.Context, modelID int) (*models.Model, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Model), args.Error(1)
}
func (m *RepoMock) GetModelByName(ctx context.Context, brandID int, name string) (*models.Model, error) {
	args := m.Called(ctx, brandID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Model), args.Error(1)
}
func (m *RepoMock) CreateModel(ctx context.Context, brandID int, name string) (int, error) {
	args := m.Called(ctx, brandID, name)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RenameModel(ctx context.Context, modelID int, newName string) (*models.Model, error) {
	args := m.Called(ctx, modelID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Model), args.Error(1)
}
func (m *RepoMock) DeleteModelCascade(ctx context.Context, modelID int) error {
	return m.Called(ctx, modelID).Error(0)
}
func (m *RepoMock) SearchModels(ctx context.Context, name string) ([]*models.Model, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Model), args.Error(1)
}
func (m *RepoMock) ListYears(ctx context.Context, modelID int) ([]*models.Year, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Year), args.Error(1)
}
func (m *RepoMock) GetYear(ctx context.Context, yearID int) (*models.Year, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Year), args.Error(1)
}
func (m *RepoMock) GetYearByValue(ctx context.Context, modelID, value int) (*models.Year, error) {
	args := m.Called(ctx, modelID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Year), args.Error(1)
}
func (m *RepoMock) CreateYear(ctx context.Context, modelID, value int) (int, error) {
	args := m.Called(ctx, modelID, value)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateYear(ctx context.Context, yearID, newValue int) (*models.Year, error) {
	args := m.Called(ctx, yearID, newValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Year), args.Error(1)
}
func (m *RepoMock) DeleteYear(ctx context.Context, yearID int) error {
	return m.Called(ctx, yearID).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newPassiveCache() *CacheMock {
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Maybe()
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	cache.On("Invalidate", mock.Anything).Return(nil).Maybe()
	return cache
}

func TestService_ListBrands(t *testing.T) {
	t.Run("cache miss reads storage and fills cache", func(t *testing.T) {
		repo := new(RepoMock)
		brands := []*models.Brand{{ID: 1, Name: "Audi"}, {ID: 2, Name: "BMW"}}
		repo.On("ListBrands", mock.Anything).Return(brands, nil)

		cache := new(CacheMock)
		cache.On("Get", "catalog:brands", mock.Anything).Return(false, nil)
		cache.On("Set", "catalog:brands", brands, time.Hour).Return(nil)

		svc := New(repo, cache, newNoopLogger())
		got, err := svc.ListBrands(context.Background())

		require.NoError(t, err)
		assert.Len(t, got, 2)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips storage", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "catalog:brands", mock.Anything).Return(true, nil)

		svc := New(repo, cache, newNoopLogger())
		_, err := svc.ListBrands(context.Background())

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ListBrands", mock.Anything)
	})
}

func TestService_AddBrands(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetBrandByName", mock.Anything, "Toyota").Return(nil, repository.ErrNotFound)
	repo.On("GetBrandByName", mock.Anything, "Lada").Return(&models.Brand{ID: 5, Name: "Lada"}, nil)
	repo.On("CreateBrand", mock.Anything, "Toyota").Return(11, nil)

	svc := New(repo, newPassiveCache(), newNoopLogger())
	got, err := svc.AddBrands(context.Background(), []string{"Toyota", "Lada", "  "})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.BatchResult{Name: "Toyota", Status: "created", ID: 11}, got[0])
	assert.Equal(t, models.BatchResult{Name: "Lada", Status: "exists", ID: 5}, got[1])
}

func TestService_RenameBrand(t *testing.T) {
	tests := []struct {
		name    string
		target  *models.Brand
		wantErr error
	}{
		{
			name: "successful rename to free name",
		},
		{
			name:    "rename to taken name",
			target:  &models.Brand{ID: 2, Name: "BMW"},
			wantErr: ErrNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.target != nil {
				repo.On("GetBrandByName", mock.Anything, "BMW").Return(tt.target, nil)
			} else {
				repo.On("GetBrandByName", mock.Anything, "BMW").Return(nil, repository.ErrNotFound)
				repo.On("RenameBrand", mock.Anything, "Bayern", "BMW").
					Return(&models.Brand{ID: 1, Name: "BMW"}, nil)
			}

			svc := New(repo, newPassiveCache(), newNoopLogger())
			got, err := svc.RenameBrand(context.Background(), "Bayern", "BMW")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				repo.AssertNotCalled(t, "RenameBrand", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "BMW", got.Name)
			}
		})
	}
}

func TestService_DeleteBrand(t *testing.T) {
	t.Run("invalidates caches after cascade", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListModels", mock.Anything, 3).Return([]*models.Model{
			{ID: 7, BrandID: 3, Name: "Octavia"},
			{ID: 8, BrandID: 3, Name: "Fabia"},
		}, nil)
		repo.On("DeleteBrandCascade", mock.Anything, 3).Return(nil)

		cache := new(CacheMock)
		cache.On("Invalidate", "catalog:brands").Return(nil)
		cache.On("Invalidate", "catalog:models:3").Return(nil)
		cache.On("Invalidate", "catalog:years:7").Return(nil)
		cache.On("Invalidate", "catalog:years:8").Return(nil)

		svc := New(repo, cache, newNoopLogger())
		err := svc.DeleteBrand(context.Background(), 3)

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("missing brand error passes through", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListModels", mock.Anything, 3).Return([]*models.Model{}, nil)
		repo.On("DeleteBrandCascade", mock.Anything, 3).Return(repository.ErrNotFound)

		svc := New(repo, newPassiveCache(), newNoopLogger())
		err := svc.DeleteBrand(context.Background(), 3)

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}

func TestService_AddModels(t *testing.T) {
	t.Run("unknown brand", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetBrand", mock.Anything, 9).Return(nil, repository.ErrNotFound)

		svc := New(repo, newPassiveCache(), newNoopLogger())
		_, err := svc.AddModels(context.Background(), 9, []string{"Camry"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("mixed created and exists", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetBrand", mock.Anything, 1).Return(&models.Brand{ID: 1, Name: "Toyota"}, nil)
		repo.On("GetModelByName", mock.Anything, 1, "Camry").Return(nil, repository.ErrNotFound)
		repo.On("GetModelByName", mock.Anything, 1, "Corolla").
			Return(&models.Model{ID: 4, BrandID: 1, Name: "Corolla"}, nil)
		repo.On("CreateModel", mock.Anything, 1, "Camry").Return(7, nil)

		svc := New(repo, newPassiveCache(), newNoopLogger())
		got, err := svc.AddModels(context.Background(), 1, []string{"Camry", "Corolla"})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "created", got[0].Status)
		assert.Equal(t, "exists", got[1].Status)
	})
}

func TestService_AddYears(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetModel", mock.Anything, 1).Return(&models.Model{ID: 1, BrandID: 1, Name: "Camry"}, nil)
	repo.On("GetYearByValue", mock.Anything, 1, 2020).Return(nil, repository.ErrNotFound)
	repo.On("GetYearByValue", mock.Anything, 1, 2021).
		Return(&models.Year{ID: 8, ModelID: 1, Value: 2021}, nil)
	repo.On("CreateYear", mock.Anything, 1, 2020).Return(9, nil)

	svc := New(repo, newPassiveCache(), newNoopLogger())
	got, err := svc.AddYears(context.Background(), 1, []int{2020, 2021})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.BatchResult{Name: "2020", Status: "created", ID: 9}, got[0])
	assert.Equal(t, models.BatchResult{Name: "2021", Status: "exists", ID: 8}, got[1])
}

func TestService_UpdateYear(t *testing.T) {
	t.Run("value taken within model", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetYear", mock.Anything, 5).Return(&models.Year{ID: 5, ModelID: 1, Value: 2019}, nil)
		repo.On("GetYearByValue", mock.Anything, 1, 2020).
			Return(&models.Year{ID: 6, ModelID: 1, Value: 2020}, nil)

		svc := New(repo, newPassiveCache(), newNoopLogger())
		_, err := svc.UpdateYear(context.Background(), 5, 2020)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNameTaken))
	})
}
