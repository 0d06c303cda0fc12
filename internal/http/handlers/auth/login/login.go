// Package login реализует HTTP-обработчик входа по Telegram-идентификатору.
//
// Handler принимает JSON с числовым ID либо @username, разрешает его через
// бизнес-логику и возвращает сессионный токен вместе с профилем пользователя.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/services/auth"
	"github.com/magabrotheeeer/auto-catalog/internal/telegram"
)

// Handler управляет HTTP-запросами на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, input string, name *string) (*auth.LoginResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход по Telegram-идентификатору
// @Description Принимает числовой ID либо @username, возвращает сессионный токен и профиль.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Telegram-идентификатор"
// @Success 200 {object} response.Response "Токен и профиль пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Идентификатор принадлежит не личному чату"
// @Failure 502 {object} response.ErrorResponse "Telegram Bot API недоступен"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	var name *string
	if req.Name != "" {
		name = &req.Name
	}

	result, err := h.service.Login(r.Context(), req.TelegramInput, name)
	if err != nil {
		switch {
		case errors.Is(err, telegram.ErrBadInput):
			log.Warn("bad telegram input", slog.String("input", req.TelegramInput))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid telegram id or username"))
		case errors.Is(err, telegram.ErrNotFound):
			log.Warn("telegram user not found", slog.String("input", req.TelegramInput))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("telegram user not found"))
		case errors.Is(err, telegram.ErrNotPrivate):
			log.Warn("username belongs to a non-private chat", slog.String("input", req.TelegramInput))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("username does not belong to a user"))
		case errors.Is(err, telegram.ErrNoToken), errors.Is(err, telegram.ErrLookupFailed):
			log.Error("telegram lookup unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("could not resolve username via telegram"))
		default:
			log.Error("failed to login", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not login"))
		}
		return
	}

	log.Info("user logged in", sl.UserID(result.User.UserID))
	render.JSON(w, r, response.OKWithData(result))
}
