// Package clear реализует HTTP-обработчик очистки слота года.
package clear

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

// Handler управляет HTTP-запросами на очистку слота.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики очистки слота.
type Service interface {
	ClearSlot(ctx context.Context, yearID int, slot models.Slot) (*models.File, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Очистить слот файла
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param yearID path int true "Идентификатор года"
// @Param slot path string true "Слот (photo, premium_photo, pdf, premium_pdf)"
// @Success 200 {object} response.Response "Обновлённая запись файла"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор или слот"
// @Failure 404 {object} response.ErrorResponse "У года нет файловой записи"
// @Router /files/year/{yearID}/slot/{slot} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.files.clear"
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

	slot := models.Slot(chi.URLParam(r, "slot"))
	if !slot.Valid() {
		log.Error("invalid slot name", slog.String("slot", string(slot)))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid slot name"))
		return
	}

	file, err := h.service.ClearSlot(r.Context(), yearID, slot)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("file row not found", slog.Int("year_id", yearID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("file not found"))
			return
		}
		log.Error("failed to clear slot", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not clear slot"))
		return
	}

	log.Info("slot cleared", slog.Int("year_id", yearID), slog.String("slot", string(slot)))
	render.JSON(w, r, response.OKWithData(file))
}
