// Package yearupdate реализует HTTP-обработчик изменения значения года выпуска.
package yearupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/services/catalog"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на изменение года выпуска.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики изменения года.
type Service interface {
	UpdateYear(ctx context.Context, yearID, newValue int) (*models.Year, error)
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
// @Summary Изменить год выпуска
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateYearRequest true "Год и новое значение"
// @Success 200 {object} response.Response "Обновлённый год"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Год не найден"
// @Failure 409 {object} response.ErrorResponse "Значение уже занято"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /catalog/years [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.yearupdate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateYearRequest
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

	year, err := h.service.UpdateYear(r.Context(), req.YearID, req.NewValue)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Warn("year not found", slog.Int("year_id", req.YearID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("year not found"))
		case errors.Is(err, catalog.ErrNameTaken):
			log.Warn("year value already taken", slog.Int("value", req.NewValue))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("year value already taken"))
		default:
			log.Error("failed to update year", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update year"))
		}
		return
	}

	log.Info("year updated", slog.Int("year_id", year.ID), slog.Int("value", year.Value))
	render.JSON(w, r, response.OKWithData(year))
}
