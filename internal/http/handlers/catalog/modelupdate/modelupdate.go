// Package modelupdate реализует HTTP-обработчик переименования модели.
package modelupdate

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

// Handler управляет HTTP-запросами на переименование модели.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики переименования модели.
type Service interface {
	RenameModel(ctx context.Context, modelID int, newName string) (*models.Model, error)
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
// @Summary Переименовать модель
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateModelRequest true "Модель и новое имя"
// @Success 200 {object} response.Response "Обновлённая модель"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Модель не найдена"
// @Failure 409 {object} response.ErrorResponse "Имя уже занято"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /catalog/models [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.modelupdate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateModelRequest
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

	model, err := h.service.RenameModel(r.Context(), req.ModelID, req.NewName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Warn("model not found", slog.Int("model_id", req.ModelID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("model not found"))
		case errors.Is(err, catalog.ErrNameTaken):
			log.Warn("model name already taken", slog.String("name", req.NewName))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("model name already taken"))
		default:
			log.Error("failed to rename model", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not rename model"))
		}
		return
	}

	log.Info("model renamed", slog.String("name", model.Name))
	render.JSON(w, r, response.OKWithData(model))
}
