// Package admin содержит бизнес-логику административной панели:
// статистика, права администраторов, настройки бота и пользователи.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
	"github.com/magabrotheeeer/auto-catalog/internal/telegram"
)

// ErrAlreadyAdmin возвращается при повторной выдаче прав.
var ErrAlreadyAdmin = errors.New("user is already an admin")

// DefaultHelpText используется, когда настройка help_message не задана.
const DefaultHelpText = "Справочник по маркам, моделям и годам выпуска автомобилей. " +
	"Выберите марку, модель и год, чтобы получить фото и руководства."

// SettingHelpMessage — ключ настройки с текстом помощи.
const SettingHelpMessage = "help_message"

// Repository определяет методы хранилища, нужные админ-панели.
type Repository interface {
	CountUsers(ctx context.Context) (int, error)
	CountActiveSubscriptions(ctx context.Context, now time.Time) (int, error)
	CountCatalog(ctx context.Context) (brands, models, years int, err error)
	TopModels(ctx context.Context, limit int) ([]*models.TopModel, error)

	GetAdminGrant(ctx context.Context, userID int64) (*models.AdminGrant, error)
	CreateAdminGrant(ctx context.Context, grant models.AdminGrant, username *string) (*models.AdminGrant, error)
	RemoveAdminGrant(ctx context.Context, userID int64) error
	ListAdminGrants(ctx context.Context) ([]*models.AdminGrantInfo, error)

	GetSetting(ctx context.Context, key string) (*models.Setting, error)
	ListSettings(ctx context.Context) ([]*models.Setting, error)
	UpsertSetting(ctx context.Context, key, value string) (*models.Setting, error)

	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, int, error)
	UpdateUser(ctx context.Context, userID int64, username, name *string) (*models.User, error)
}

// Resolver определяет разрешение username через Bot API.
type Resolver interface {
	HasToken() bool
	GetChatByUsername(ctx context.Context, username string) (*telegram.Chat, error)
}

// Service реализует бизнес-логику административной панели.
type Service struct {
	repo Repository
	tg   Resolver
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, tg Resolver, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		tg:   tg,
		log:  log,
	}
}

// Stats возвращает сводную статистику сервиса. Премиум-пользователи
// считаются по действующим на данный момент подпискам.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	premiumUsers, err := s.repo.CountActiveSubscriptions(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	brands, modelsCount, years, err := s.repo.CountCatalog(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalUsers:   totalUsers,
		PremiumUsers: premiumUsers,
		RegularUsers: totalUsers - premiumUsers,
		BrandsCount:  brands,
		ModelsCount:  modelsCount,
		YearsCount:   years,
	}, nil
}

// TopModels возвращает модели по популярности обращений к материалам.
func (s *Service) TopModels(ctx context.Context, limit int) ([]*models.TopModel, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.TopModels(ctx, limit)
}

// ListGrants возвращает всех администраторов с данными пользователей.
func (s *Service) ListGrants(ctx context.Context) ([]*models.AdminGrantInfo, error) {
	return s.repo.ListAdminGrants(ctx)
}

// GrantAdmin выдаёт права администратора по Telegram-идентификатору.
// Пользователь создаётся при отсутствии; повторная выдача — конфликт.
func (s *Service) GrantAdmin(ctx context.Context, input string, isSuper bool, grantedBy int64) (*models.AdminGrant, error) {
	userID, username, err := s.resolveInput(ctx, input)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetAdminGrant(ctx, userID); err == nil {
		return nil, ErrAlreadyAdmin
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	grant, err := s.repo.CreateAdminGrant(ctx, models.AdminGrant{
		UserID:    userID,
		IsSuper:   isSuper,
		GrantedBy: grantedBy,
	}, username)
	if err != nil {
		return nil, err
	}

	s.log.Info("admin rights granted",
		sl.UserID(userID),
		slog.Bool("is_super", isSuper),
		slog.Int64("granted_by", grantedBy))
	return grant, nil
}

// RevokeAdmin отзывает права администратора.
func (s *Service) RevokeAdmin(ctx context.Context, userID int64) error {
	if err := s.repo.RemoveAdminGrant(ctx, userID); err != nil {
		return err
	}
	s.log.Info("admin rights revoked", sl.UserID(userID))
	return nil
}

// ListSettings возвращает все настройки бота.
func (s *Service) ListSettings(ctx context.Context) ([]*models.Setting, error) {
	return s.repo.ListSettings(ctx)
}

// UpdateSetting задаёт значение настройки по ключу.
func (s *Service) UpdateSetting(ctx context.Context, key, value string) (*models.Setting, error) {
	setting, err := s.repo.UpsertSetting(ctx, key, value)
	if err != nil {
		return nil, err
	}
	s.log.Info("bot setting updated", slog.String("key", key))
	return setting, nil
}

// HelpText возвращает текст помощи из настроек либо значение по умолчанию.
func (s *Service) HelpText(ctx context.Context) (string, error) {
	setting, err := s.repo.GetSetting(ctx, SettingHelpMessage)
	if errors.Is(err, repository.ErrNotFound) {
		return DefaultHelpText, nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// ListUsers возвращает страницу пользователей, новые первыми.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListUsers(ctx, limit, offset)
}

// UpdateUser обновляет username и имя пользователя.
func (s *Service) UpdateUser(ctx context.Context, userID int64, username, name *string) (*models.User, error) {
	return s.repo.UpdateUser(ctx, userID, username, name)
}

// resolveInput разрешает пользовательский ввод в канонический ID и username.
func (s *Service) resolveInput(ctx context.Context, input string) (int64, *string, error) {
	canonical, isNumeric, err := telegram.NormalizeInput(input)
	if err != nil {
		return 0, nil, err
	}

	if isNumeric {
		userID, err := strconv.ParseInt(canonical, 10, 64)
		if err != nil {
			return 0, nil, telegram.ErrBadInput
		}
		return userID, nil, nil
	}

	if s.tg.HasToken() {
		chat, err := s.tg.GetChatByUsername(ctx, canonical)
		if err == nil {
			if chat.Username != nil {
				return chat.ID, chat.Username, nil
			}
			return chat.ID, &canonical, nil
		}
		if errors.Is(err, telegram.ErrNotPrivate) || errors.Is(err, telegram.ErrNotFound) {
			return 0, nil, err
		}
		s.log.Warn("telegram lookup failed, falling back to storage",
			slog.String("username", canonical), sl.Err(err))
	}

	user, err := s.repo.GetUserByUsername(ctx, canonical)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, nil, telegram.ErrNotFound
	}
	if err != nil {
		return 0, nil, err
	}
	return user.UserID, &canonical, nil
}
