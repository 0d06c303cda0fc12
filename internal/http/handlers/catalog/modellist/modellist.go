// Package modellist реализует HTTP-обработчик списка моделей марки.
package modellist

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
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на список моделей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога моделей.
type Service interface {
	ListModels(ctx context.Context, brandID int) ([]*models.Model, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список моделей марки
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param brandID path int true "Идентификатор марки"
// @Success 200 {object} response.Response "Список моделей"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Марка не найдена"
// @Router /catalog/brands/{brandID}/models [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.modellist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	brandID, err := strconv.Atoi(chi.URLParam(r, "brandID"))
	if err != nil {
		log.Error("failed to decode brand id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid brand id"))
		return
	}

	items, err := h.service.ListModels(r.Context(), brandID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("brand not found", slog.Int("brand_id", brandID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("brand not found"))
			return
		}
		log.Error("failed to list models", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list models"))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
