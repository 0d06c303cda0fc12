package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

type AdminRepoMock struct{ mock.Mock }

func (m *AdminRepoMock) GetAdminGrant(ctx context.Context, userID int64) (*models.AdminGrant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminGrant), args.Error(1)
}

type SubsRepoMock struct{ mock.Mock }

func (m *SubsRepoMock) HasActiveSubscription(ctx context.Context, userID int64, now time.Time) (bool, error) {
	args := m.Called(ctx, userID, now)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_IsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		grant   *models.AdminGrant
		repoErr error
		want    bool
		wantErr bool
	}{
		{
			name:  "user has admin grant",
			grant: &models.AdminGrant{UserID: 1, IsSuper: false},
			want:  true,
		},
		{
			name:    "user has no grant",
			repoErr: repository.ErrNotFound,
			want:    false,
		},
		{
			name:    "storage failure",
			repoErr: errors.New("connection refused"),
			want:    false,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adminRepo := new(AdminRepoMock)
			adminRepo.On("GetAdminGrant", mock.Anything, int64(1)).Return(tt.grant, tt.repoErr)

			svc := New(adminRepo, new(SubsRepoMock), newNoopLogger())
			got, err := svc.IsAdmin(context.Background(), 1)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_IsSuperAdmin(t *testing.T) {
	tests := []struct {
		name    string
		grant   *models.AdminGrant
		repoErr error
		want    bool
	}{
		{
			name:  "super admin grant",
			grant: &models.AdminGrant{UserID: 1, IsSuper: true},
			want:  true,
		},
		{
			name:  "regular admin grant",
			grant: &models.AdminGrant{UserID: 1, IsSuper: false},
			want:  false,
		},
		{
			name:    "no grant at all",
			repoErr: repository.ErrNotFound,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adminRepo := new(AdminRepoMock)
			adminRepo.On("GetAdminGrant", mock.Anything, int64(1)).Return(tt.grant, tt.repoErr)

			svc := New(adminRepo, new(SubsRepoMock), newNoopLogger())
			got, err := svc.IsSuperAdmin(context.Background(), 1)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CanSeePremium(t *testing.T) {
	tests := []struct {
		name       string
		grant      *models.AdminGrant
		grantErr   error
		hasPremium bool
		want       bool
	}{
		{
			name:  "admin sees premium without subscription",
			grant: &models.AdminGrant{UserID: 1},
			want:  true,
		},
		{
			name:       "subscriber sees premium",
			grantErr:   repository.ErrNotFound,
			hasPremium: true,
			want:       true,
		},
		{
			name:       "plain user does not",
			grantErr:   repository.ErrNotFound,
			hasPremium: false,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adminRepo := new(AdminRepoMock)
			adminRepo.On("GetAdminGrant", mock.Anything, int64(1)).Return(tt.grant, tt.grantErr)
			subsRepo := new(SubsRepoMock)
			subsRepo.On("HasActiveSubscription", mock.Anything, int64(1), mock.Anything).
				Return(tt.hasPremium, nil).Maybe()

			svc := New(adminRepo, subsRepo, newNoopLogger())
			got, err := svc.CanSeePremium(context.Background(), 1)

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
