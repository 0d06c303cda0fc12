// Package yearlist реализует HTTP-обработчик списка годов выпуска модели.
package yearlist

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

// Handler управляет HTTP-запросами на список годов выпуска.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога годов.
type Service interface {
	ListYears(ctx context.Context, modelID int) ([]*models.Year, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список годов выпуска модели
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param modelID path int true "Идентификатор модели"
// @Success 200 {object} response.Response "Список годов"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Модель не найдена"
// @Router /catalog/models/{modelID}/years [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.yearlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	modelID, err := strconv.Atoi(chi.URLParam(r, "modelID"))
	if err != nil {
		log.Error("failed to decode model id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid model id"))
		return
	}

	items, err := h.service.ListYears(r.Context(), modelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("model not found", slog.Int("model_id", modelID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("model not found"))
			return
		}
		log.Error("failed to list years", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list years"))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
