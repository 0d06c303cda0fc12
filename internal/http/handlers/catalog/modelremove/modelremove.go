// Package modelremove реализует HTTP-обработчик каскадного удаления модели.
package modelremove

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

// Handler управляет HTTP-запросами на удаление модели.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления модели.
type Service interface {
	DeleteModel(ctx context.Context, modelID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить модель
// @Description Каскадно удаляет модель вместе с годами выпуска и файлами.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param modelID path int true "Идентификатор модели"
// @Success 200 {object} response.Response "Модель удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Модель не найдена"
// @Router /catalog/models/{modelID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.modelremove"
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

	if err := h.service.DeleteModel(r.Context(), modelID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("model not found", slog.Int("model_id", modelID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("model not found"))
			return
		}
		log.Error("failed to delete model", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete model"))
		return
	}

	log.Info("model deleted", slog.Int("model_id", modelID))
	render.JSON(w, r, response.OK())
}
