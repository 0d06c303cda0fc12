// Package grantcreate реализует HTTP-обработчик выдачи административных прав.
//
// Пользователь указывается числовым ID либо @username; отсутствующая
// в хранилище учётная запись создаётся автоматически.
package grantcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auto-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/services/admin"
	"github.com/magabrotheeeer/auto-catalog/internal/telegram"
)

// Handler управляет HTTP-запросами на выдачу прав.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выдачи прав.
type Service interface {
	GrantAdmin(ctx context.Context, input string, isSuper bool, grantedBy int64) (*models.AdminGrant, error)
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
// @Summary Выдать административные права
// @Description Выдаёт права по Telegram-идентификатору. Требует прав супер-админа.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GrantAdminRequest true "Telegram-идентификатор и флаг супер-админа"
// @Success 200 {object} response.Response "Выданные права"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Права уже выданы"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/grants [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.grantcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.GrantAdminRequest
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

	grantedBy, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	grant, err := h.service.GrantAdmin(r.Context(), req.TelegramInput, req.IsSuper, grantedBy.UserID)
	if err != nil {
		switch {
		case errors.Is(err, telegram.ErrBadInput):
			log.Warn("bad telegram input", slog.String("input", req.TelegramInput))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid telegram id or username"))
		case errors.Is(err, telegram.ErrNotFound), errors.Is(err, telegram.ErrNotPrivate):
			log.Warn("telegram user not found", slog.String("input", req.TelegramInput))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("telegram user not found"))
		case errors.Is(err, admin.ErrAlreadyAdmin):
			log.Warn("user is already an admin", slog.String("input", req.TelegramInput))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("user is already an admin"))
		default:
			log.Error("failed to grant admin rights", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not grant admin rights"))
		}
		return
	}

	log.Info("admin rights granted", sl.UserID(grant.UserID))
	render.JSON(w, r, response.OKWithData(grant))
}
