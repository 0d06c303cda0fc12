package files

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/auto-catalog/internal/lib/drive"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetFileByYearID(ctx context.Context, yearID int) (*models.File, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}
func (m *RepoMock) UpsertFileSlot(ctx context.Context, yearID int, slot models.Slot, link string, userID int64) (*models.File, error) {
	args := m.Called(ctx, yearID, slot, link, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}
func (m *RepoMock) ClearFileSlot(ctx context.Context, yearID int, slot models.Slot) (*models.File, error) {
	args := m.Called(ctx, yearID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}
func (m *RepoMock) UpdateFileCaption(ctx context.Context, yearID int, caption *string) (*models.File, error) {
	args := m.Called(ctx, yearID, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}
func (m *RepoMock) GetYearContext(ctx context.Context, yearID int) (string, string, int, error) {
	args := m.Called(ctx, yearID)
	return args.String(0), args.String(1), args.Int(2), args.Error(3)
}
func (m *RepoMock) InsertAccessStat(ctx context.Context, userID int64, yearID int, slot models.Slot) error {
	return m.Called(ctx, userID, yearID, slot).Error(0)
}

type AccessMock struct{ mock.Mock }

func (m *AccessMock) CanSeePremium(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func strptr(s string) *string { return &s }

func TestService_AttachSlot(t *testing.T) {
	tests := []struct {
		name     string
		driveURL string
		wantLink string
		wantErr  error
	}{
		{
			name:     "file/d link is normalized to download form",
			driveURL: "https://drive.google.com/file/d/abc123/view?usp=sharing",
			wantLink: "https://drive.google.com/uc?export=download&id=abc123",
		},
		{
			name:     "id param link is normalized to download form",
			driveURL: "https://drive.google.com/open?id=xyz789",
			wantLink: "https://drive.google.com/uc?export=download&id=xyz789",
		},
		{
			name:     "unrecognized link is rejected",
			driveURL: "https://example.com/photo.jpg",
			wantErr:  drive.ErrInvalidLink,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("UpsertFileSlot", mock.Anything, 1, models.SlotPhoto, tt.wantLink, int64(5)).
				Return(&models.File{ID: 1, YearID: 1, Photo: strptr(tt.wantLink)}, nil).Maybe()

			svc := New(repo, new(AccessMock), newNoopLogger())
			got, err := svc.AttachSlot(context.Background(), 1, models.SlotPhoto, tt.driveURL, 5)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				repo.AssertNotCalled(t, "UpsertFileSlot",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLink, *got.Photo)
			}
		})
	}
}

func TestService_ListByYear(t *testing.T) {
	storedFile := &models.File{
		ID:           1,
		YearID:       10,
		Photo:        strptr("https://drive.google.com/uc?export=download&id=ph1"),
		PremiumPhoto: strptr("https://drive.google.com/uc?export=download&id=pp1"),
		Pdf:          strptr("https://drive.google.com/uc?export=download&id=pd1"),
		PremiumPdf:   strptr("https://drive.google.com/uc?export=download&id=ppd1"),
		Caption:      strptr("Руководство по ремонту"),
	}

	tests := []struct {
		name        string
		premium     bool
		wantPremium bool
	}{
		{
			name:        "premium requester sees all slots",
			premium:     true,
			wantPremium: true,
		},
		{
			name:        "plain requester never sees premium slots",
			premium:     false,
			wantPremium: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetYearContext", mock.Anything, 10).Return("Toyota", "Camry", 2020, nil)
			repo.On("GetFileByYearID", mock.Anything, 10).Return(storedFile, nil)
			repo.On("InsertAccessStat", mock.Anything, int64(5), 10, mock.Anything).Return(nil)

			accessMock := new(AccessMock)
			accessMock.On("CanSeePremium", mock.Anything, int64(5)).Return(tt.premium, nil)

			svc := New(repo, accessMock, newNoopLogger())
			got, err := svc.ListByYear(context.Background(), 10, 5)

			require.NoError(t, err)
			assert.Equal(t, "Toyota", got.Brand)
			assert.Equal(t, "Camry", got.Model)
			assert.Equal(t, 2020, got.Year)
			require.Len(t, got.Files, 1)

			file := got.Files[0]
			require.NotNil(t, file.Photo)
			assert.Equal(t, "/api/v1/files/image/ph1", *file.Photo)
			require.NotNil(t, file.Pdf)
			assert.Equal(t, *storedFile.Pdf, *file.Pdf)

			if tt.wantPremium {
				require.NotNil(t, file.PremiumPhoto)
				assert.Equal(t, "/api/v1/files/image/pp1", *file.PremiumPhoto)
				require.NotNil(t, file.PremiumPdf)
			} else {
				assert.Nil(t, file.PremiumPhoto)
				assert.Nil(t, file.PremiumPdf)
			}
		})
	}
}

func TestService_ListByYear_NoFilesIsEmptyList(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetYearContext", mock.Anything, 10).Return("Toyota", "Camry", 2020, nil)
	repo.On("GetFileByYearID", mock.Anything, 10).Return(nil, repository.ErrNotFound)

	accessMock := new(AccessMock)
	accessMock.On("CanSeePremium", mock.Anything, int64(5)).Return(false, nil)

	svc := New(repo, accessMock, newNoopLogger())
	got, err := svc.ListByYear(context.Background(), 10, 5)

	require.NoError(t, err)
	assert.Empty(t, got.Files)
}

func TestService_ListByYear_UnknownYear(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetYearContext", mock.Anything, 99).Return("", "", 0, repository.ErrNotFound)

	svc := New(repo, new(AccessMock), newNoopLogger())
	_, err := svc.ListByYear(context.Background(), 99, 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestService_ClearSlot(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ClearFileSlot", mock.Anything, 10, models.SlotPdf).
		Return(&models.File{ID: 1, YearID: 10}, nil)

	svc := New(repo, new(AccessMock), newNoopLogger())
	got, err := svc.ClearSlot(context.Background(), 10, models.SlotPdf)

	require.NoError(t, err)
	assert.Nil(t, got.Pdf)
}
