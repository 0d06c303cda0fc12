// Package yearadd реализует HTTP-обработчик массового добавления годов выпуска.
package yearadd

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
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на добавление годов выпуска.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления годов.
type Service interface {
	AddYears(ctx context.Context, modelID int, values []int) ([]models.BatchResult, error)
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
// @Summary Добавить годы выпуска
// @Description Добавляет массив годов под моделью; существующие пропускаются со статусом exists.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddYearsRequest true "Модель и годы выпуска"
// @Success 200 {object} response.Response "Статус по каждому году"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Модель не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /catalog/years [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.yearadd"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AddYearsRequest
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

	results, err := h.service.AddYears(r.Context(), req.ModelID, req.Years)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("model not found", slog.Int("model_id", req.ModelID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("model not found"))
			return
		}
		log.Error("failed to add years", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add years"))
		return
	}

	log.Info("years processed", slog.Int("count", len(results)))
	render.JSON(w, r, response.OKWithData(results))
}
