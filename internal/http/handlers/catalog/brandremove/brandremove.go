// Package brandremove реализует HTTP-обработчик каскадного удаления марки.
//
// Вместе с маркой в одной транзакции удаляются все её модели,
// годы выпуска и файлы.
package brandremove

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

// Handler управляет HTTP-запросами на удаление марки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления марки.
type Service interface {
	DeleteBrand(ctx context.Context, brandID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить марку
// @Description Каскадно удаляет марку вместе с моделями, годами и файлами.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param brandID path int true "Идентификатор марки"
// @Success 200 {object} response.Response "Марка удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Марка не найдена"
// @Router /catalog/brands/{brandID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.brandremove"
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

	if err := h.service.DeleteBrand(r.Context(), brandID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("brand not found", slog.Int("brand_id", brandID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("brand not found"))
			return
		}
		log.Error("failed to delete brand", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete brand"))
		return
	}

	log.Info("brand deleted", slog.Int("brand_id", brandID))
	render.JSON(w, r, response.OK())
}
