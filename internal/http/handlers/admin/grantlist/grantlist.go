// Package grantlist реализует HTTP-обработчик списка администраторов.
package grantlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// Handler управляет HTTP-запросами на список администраторов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики прав администраторов.
type Service interface {
	ListGrants(ctx context.Context) ([]*models.AdminGrantInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список администраторов
// @Description Возвращает администраторов с данными пользователей и выдавших права.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список администраторов"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/grants [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.grantlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	grants, err := h.service.ListGrants(r.Context())
	if err != nil {
		log.Error("failed to list admin grants", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list admin grants"))
		return
	}

	render.JSON(w, r, response.OKWithData(grants))
}
