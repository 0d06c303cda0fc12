// Package topmodels реализует HTTP-обработчик рейтинга моделей
// по обращениям к материалам.
package topmodels

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// Handler управляет HTTP-запросами на рейтинг моделей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики рейтинга.
type Service interface {
	TopModels(ctx context.Context, limit int) ([]*models.TopModel, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Рейтинг моделей
// @Description Модели по количеству обращений к файлам, по убыванию, с рангом.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Размер рейтинга (по умолчанию 10)"
// @Success 200 {object} response.Response "Рейтинг моделей"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/stats/top-models [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.topmodels"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.service.TopModels(r.Context(), limit)
	if err != nil {
		log.Error("failed to collect top models", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not collect top models"))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
