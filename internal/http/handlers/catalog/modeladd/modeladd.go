// Package modeladd реализует HTTP-обработчик массового добавления моделей.
package modeladd

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

// Handler управляет HTTP-запросами на добавление моделей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления моделей.
type Service interface {
	AddModels(ctx context.Context, brandID int, names []string) ([]models.BatchResult, error)
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
// @Summary Добавить модели
// @Description Добавляет массив моделей под маркой; существующие пропускаются со статусом exists.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddModelsRequest true "Марка и имена моделей"
// @Success 200 {object} response.Response "Статус по каждому имени"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Марка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /catalog/models [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.modeladd"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AddModelsRequest
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

	results, err := h.service.AddModels(r.Context(), req.BrandID, req.Models)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("brand not found", slog.Int("brand_id", req.BrandID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("brand not found"))
			return
		}
		log.Error("failed to add models", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add models"))
		return
	}

	log.Info("models processed", slog.Int("count", len(results)))
	render.JSON(w, r, response.OKWithData(results))
}
