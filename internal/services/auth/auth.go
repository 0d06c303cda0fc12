// Package auth содержит бизнес-логику входа по Telegram-идентификатору
// и проверку сессионных токенов.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	jwtlib "github.com/magabrotheeeer/auto-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
	"github.com/magabrotheeeer/auto-catalog/internal/telegram"
)

// ErrUserGone возвращается, когда токен валиден, но пользователь
// уже удалён из хранилища.
var ErrUserGone = errors.New("user no longer exists")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// UpsertUser создаёт пользователя либо обновляет username и имя.
	UpsertUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUser возвращает пользователя по каноническому идентификатору.
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	// GetUserByUsername возвращает пользователя по сохранённому username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TelegramResolver определяет разрешение username через Bot API.
type TelegramResolver interface {
	// HasToken сообщает, настроен ли токен бота.
	HasToken() bool
	// GetChatByUsername запрашивает getChat по @username.
	GetChatByUsername(ctx context.Context, username string) (*telegram.Chat, error)
}

// LoginResult — результат входа: сессионный токен и профиль.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Service реализует вход и проверку сессий.
type Service struct {
	repo  UserRepository
	tg    TelegramResolver
	maker jwtlib.Maker
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo UserRepository, tg TelegramResolver, maker jwtlib.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		tg:    tg,
		maker: maker,
		log:   log,
	}
}

// Login разрешает Telegram-идентификатор в канонический числовой ID,
// создаёт либо обновляет пользователя и выдаёт сессионный токен.
// Числовой ввод принимается как есть; username разрешается через Bot API,
// при недоступности которого используется локальный резерв по хранилищу.
func (s *Service) Login(ctx context.Context, input string, name *string) (*LoginResult, error) {
	canonical, isNumeric, err := telegram.NormalizeInput(input)
	if err != nil {
		return nil, err
	}

	var userID int64
	var username *string
	displayName := name

	if isNumeric {
		userID, err = strconv.ParseInt(canonical, 10, 64)
		if err != nil {
			return nil, telegram.ErrBadInput
		}
	} else {
		userID, username, displayName, err = s.resolveUsername(ctx, canonical, name)
		if err != nil {
			return nil, err
		}
	}

	user, err := s.repo.UpsertUser(ctx, models.User{
		UserID:   userID,
		Username: username,
		Name:     displayName,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.maker.GenerateToken(user.UserID)
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", sl.UserID(user.UserID))
	return &LoginResult{Token: token, User: user}, nil
}

// resolveUsername возвращает канонический ID для username: сначала через
// Bot API, затем по сохранённым пользователям. Ошибка Bot API сохраняется,
// чтобы при пустом резерве вернуть именно её.
func (s *Service) resolveUsername(ctx context.Context, username string, name *string) (int64, *string, *string, error) {
	var apiErr error
	if s.tg.HasToken() {
		chat, err := s.tg.GetChatByUsername(ctx, username)
		if err == nil {
			resolvedName := name
			if resolvedName == nil {
				resolvedName = telegram.DisplayName(chat)
			}
			resolvedUsername := &username
			if chat.Username != nil {
				resolvedUsername = chat.Username
			}
			return chat.ID, resolvedUsername, resolvedName, nil
		}
		if errors.Is(err, telegram.ErrNotPrivate) {
			return 0, nil, nil, err
		}
		apiErr = err
		s.log.Warn("telegram lookup failed, falling back to storage",
			slog.String("username", username), sl.Err(err))
	} else {
		apiErr = telegram.ErrNoToken
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, nil, nil, apiErr
	}
	if err != nil {
		return 0, nil, nil, err
	}
	return user.UserID, &username, name, nil
}

// Authenticate проверяет сессионный токен и возвращает актуальный профиль.
// Любая проблема с самим токеном отображается в единую ошибку
// jwtlib.ErrInvalidToken; отсутствие пользователя — отдельная ошибка.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.maker.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUser(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserGone
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser возвращает профиль пользователя по ID.
func (s *Service) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetUser(ctx, userID)
}
