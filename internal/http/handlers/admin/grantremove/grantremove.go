// Package grantremove реализует HTTP-обработчик отзыва административных прав.
package grantremove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на отзыв прав.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отзыва прав.
type Service interface {
	RevokeAdmin(ctx context.Context, userID int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отозвать административные права
// @Description Требует прав супер-админа.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userID path string true "Канонический идентификатор Telegram"
// @Success 200 {object} response.Response "Права отозваны"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Пользователь не администратор"
// @Router /admin/grants/{userID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.grantremove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Error("failed to decode user id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user id"))
		return
	}

	if err := h.service.RevokeAdmin(r.Context(), userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("admin grant not found", sl.UserID(userID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("admin grant not found"))
			return
		}
		log.Error("failed to revoke admin rights", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not revoke admin rights"))
		return
	}

	log.Info("admin rights revoked", sl.UserID(userID))
	render.JSON(w, r, response.OK())
}
