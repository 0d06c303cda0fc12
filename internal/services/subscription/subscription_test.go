package subscription

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

func (m *RepoMock) GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) UpsertSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) RemoveSubscription(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *RepoMock) ListPriceTiers(ctx context.Context) ([]*models.PriceTier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PriceTier), args.Error(1)
}
func (m *RepoMock) GetPriceTier(ctx context.Context, periodMonths int) (*models.PriceTier, error) {
	args := m.Called(ctx, periodMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceTier), args.Error(1)
}
func (m *RepoMock) UpsertPriceTier(ctx context.Context, periodMonths int, priceKopecks int64) (*models.PriceTier, error) {
	args := m.Called(ctx, periodMonths, priceKopecks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceTier), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Get(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		sub     *models.Subscription
		repoErr error
		wantErr error
	}{
		{
			name: "active subscription is returned",
			sub: &models.Subscription{
				UserID:   1,
				SubStart: now.AddDate(0, -1, 0),
				SubEnd:   now.AddDate(0, 1, 0),
			},
		},
		{
			name: "expired subscription reads as not found",
			sub: &models.Subscription{
				UserID:   1,
				SubStart: now.AddDate(0, -2, 0),
				SubEnd:   now.Add(-time.Hour),
			},
			wantErr: ErrSubscriptionNotFound,
		},
		{
			name:    "no subscription row",
			repoErr: repository.ErrNotFound,
			wantErr: ErrSubscriptionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetSubscription", mock.Anything, int64(1)).Return(tt.sub, tt.repoErr)

			svc := New(repo, newNoopLogger())
			got, err := svc.Get(context.Background(), 1)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.sub, got)
			}
		})
	}
}

func TestService_Get_DoesNotDeleteExpiredRow(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscription", mock.Anything, int64(1)).Return(&models.Subscription{
		UserID: 1,
		SubEnd: time.Now().Add(-time.Hour),
	}, nil)

	svc := New(repo, newNoopLogger())
	_, err := svc.Get(context.Background(), 1)

	require.Error(t, err)
	repo.AssertNotCalled(t, "RemoveSubscription", mock.Anything, mock.Anything)
}

func TestService_CreateOrRenew(t *testing.T) {
	tests := []struct {
		name         string
		periodMonths int
		tier         *models.PriceTier
		tierErr      error
		wantErr      error
	}{
		{
			name:         "successful purchase for known period",
			periodMonths: 3,
			tier:         &models.PriceTier{PeriodMonths: 3, PriceKopecks: 49900},
		},
		{
			name:         "purchase for period without tier",
			periodMonths: 7,
			tierErr:      repository.ErrNotFound,
			wantErr:      ErrUnknownPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetPriceTier", mock.Anything, tt.periodMonths).Return(tt.tier, tt.tierErr)
			repo.On("UpsertSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
				return sub.UserID == 1 &&
					sub.PeriodMonths == tt.periodMonths &&
					sub.Status == models.SubscriptionStatusActive &&
					sub.SubEnd.Equal(sub.SubStart.AddDate(0, tt.periodMonths, 0))
			})).Return(&models.Subscription{ID: 10, UserID: 1, PeriodMonths: tt.periodMonths}, nil).Maybe()

			svc := New(repo, newNoopLogger())
			got, err := svc.CreateOrRenew(context.Background(), 1, tt.periodMonths)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				repo.AssertNotCalled(t, "UpsertSubscription", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 10, got.ID)
			}
		})
	}
}

func TestService_Remove(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{
			name: "successful remove",
		},
		{
			name:    "remove missing subscription",
			repoErr: repository.ErrNotFound,
			wantErr: ErrSubscriptionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("RemoveSubscription", mock.Anything, int64(1)).Return(tt.repoErr)

			svc := New(repo, newNoopLogger())
			err := svc.Remove(context.Background(), 1)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestService_UpdatePrice(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpsertPriceTier", mock.Anything, 6, int64(99900)).
		Return(&models.PriceTier{PeriodMonths: 6, PriceKopecks: 99900}, nil)

	svc := New(repo, newNoopLogger())
	got, err := svc.UpdatePrice(context.Background(), 6, 99900)

	require.NoError(t, err)
	assert.Equal(t, int64(99900), got.PriceKopecks)
}
