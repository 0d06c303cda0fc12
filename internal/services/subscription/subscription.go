// Package subscription содержит бизнес-логику платных подписок:
// покупка и продление с перезаписью окна, чтение и тарифы.
package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/auto-catalog/internal/lib/period"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// ErrUnknownPeriod возвращается при покупке на период без тарифа.
var ErrUnknownPeriod = errors.New("unknown subscription period")

// ErrSubscriptionNotFound возвращается, когда подписки нет либо она истекла.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// Repository определяет методы для работы с подписками в хранилище.
type Repository interface {
	// GetSubscription возвращает подписку пользователя.
	GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error)
	// UpsertSubscription создаёт подписку либо перезаписывает окно действия.
	UpsertSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// RemoveSubscription удаляет подписку пользователя.
	RemoveSubscription(ctx context.Context, userID int64) error
	// ListPriceTiers возвращает тарифы по возрастанию периода.
	ListPriceTiers(ctx context.Context) ([]*models.PriceTier, error)
	// GetPriceTier возвращает тариф для периода.
	GetPriceTier(ctx context.Context, periodMonths int) (*models.PriceTier, error)
	// UpsertPriceTier задаёт цену для периода.
	UpsertPriceTier(ctx context.Context, periodMonths int, priceKopecks int64) (*models.PriceTier, error)
}

// Service реализует бизнес-логику подписок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Get возвращает действующую подписку пользователя. Истёкшая строка
// считается отсутствующей, но не удаляется: этим занимается фоновая очистка.
func (s *Service) Get(ctx context.Context, userID int64) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	if !period.Active(time.Now(), sub.SubEnd) {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

// CreateOrRenew оформляет подписку на periodMonths начиная с текущего
// момента. Продление перезаписывает окно: остаток прежнего периода сгорает.
func (s *Service) CreateOrRenew(ctx context.Context, userID int64, periodMonths int) (*models.Subscription, error) {
	if _, err := s.repo.GetPriceTier(ctx, periodMonths); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownPeriod
		}
		return nil, err
	}

	subStart, subEnd := period.Window(time.Now(), periodMonths)
	sub, err := s.repo.UpsertSubscription(ctx, models.Subscription{
		UserID:       userID,
		SubStart:     subStart,
		SubEnd:       subEnd,
		PeriodMonths: periodMonths,
		Status:       models.SubscriptionStatusActive,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("subscription activated",
		sl.UserID(userID),
		slog.Int("period_months", periodMonths),
		slog.Time("sub_end", sub.SubEnd))
	return sub, nil
}

// Remove снимает подписку пользователя.
func (s *Service) Remove(ctx context.Context, userID int64) error {
	err := s.repo.RemoveSubscription(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSubscriptionNotFound
	}
	return err
}

// ListPrices возвращает действующие тарифы.
func (s *Service) ListPrices(ctx context.Context) ([]*models.PriceTier, error) {
	return s.repo.ListPriceTiers(ctx)
}

// UpdatePrice задаёт цену тарифа в копейках.
func (s *Service) UpdatePrice(ctx context.Context, periodMonths int, priceKopecks int64) (*models.PriceTier, error) {
	tier, err := s.repo.UpsertPriceTier(ctx, periodMonths, priceKopecks)
	if err != nil {
		return nil, err
	}
	s.log.Info("price tier updated",
		slog.Int("period_months", periodMonths),
		slog.Int64("price_kopecks", priceKopecks))
	return tier, nil
}
