// Package yearremove реализует HTTP-обработчик удаления года выпуска.
package yearremove

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

// Handler управляет HTTP-запросами на удаление года выпуска.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления года.
type Service interface {
	DeleteYear(ctx context.Context, yearID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить год выпуска
// @Description Удаляет год вместе с его файловой записью.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param yearID path int true "Идентификатор года"
// @Success 200 {object} response.Response "Год удалён"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Год не найден"
// @Router /catalog/years/{yearID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.yearremove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	yearID, err := strconv.Atoi(chi.URLParam(r, "yearID"))
	if err != nil {
		log.Error("failed to decode year id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid year id"))
		return
	}

	if err := h.service.DeleteYear(r.Context(), yearID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("year not found", slog.Int("year_id", yearID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("year not found"))
			return
		}
		log.Error("failed to delete year", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete year"))
		return
	}

	log.Info("year deleted", slog.Int("year_id", yearID))
	render.JSON(w, r, response.OK())
}
