// Package access содержит проверки прав доступа: администратор,
// супер-администратор и премиум-доступ по подписке.
package access

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// AdminRepository определяет методы для чтения прав администраторов.
type AdminRepository interface {
	// GetAdminGrant возвращает запись о правах администратора.
	GetAdminGrant(ctx context.Context, userID int64) (*models.AdminGrant, error)
}

// SubscriptionRepository определяет методы для проверки подписки.
type SubscriptionRepository interface {
	// HasActiveSubscription сообщает, действует ли подписка в момент now.
	HasActiveSubscription(ctx context.Context, userID int64, now time.Time) (bool, error)
}

// Service реализует проверки прав доступа.
type Service struct {
	admins AdminRepository
	subs   SubscriptionRepository
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(admins AdminRepository, subs SubscriptionRepository, log *slog.Logger) *Service {
	return &Service{
		admins: admins,
		subs:   subs,
		log:    log,
	}
}

// IsAdmin сообщает, выданы ли пользователю права администратора.
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	_, err := s.admins.GetAdminGrant(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsSuperAdmin сообщает, выданы ли пользователю права супер-администратора.
func (s *Service) IsSuperAdmin(ctx context.Context, userID int64) (bool, error) {
	grant, err := s.admins.GetAdminGrant(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return grant.IsSuper, nil
}

// HasPremium сообщает, действует ли подписка пользователя прямо сейчас.
// Момент, совпадающий с концом окна, считается действующим.
// Чтение без побочных эффектов: истёкшие строки убирает фоновая очистка.
func (s *Service) HasPremium(ctx context.Context, userID int64) (bool, error) {
	return s.subs.HasActiveSubscription(ctx, userID, time.Now())
}

// CanSeePremium сообщает, доступны ли пользователю премиум-материалы:
// права администратора либо действующая подписка.
func (s *Service) CanSeePremium(ctx context.Context, userID int64) (bool, error) {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}
	if isAdmin {
		return true, nil
	}
	return s.HasPremium(ctx, userID)
}
