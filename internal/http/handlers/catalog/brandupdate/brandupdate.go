// Package brandupdate реализует HTTP-обработчик переименования марки.
package brandupdate

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

// Handler управляет HTTP-запросами на переименование марки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики переименования марки.
type Service interface {
	RenameBrand(ctx context.Context, oldName, newName string) (*models.Brand, error)
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
// @Summary Переименовать марку
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateBrandRequest true "Старое и новое имя"
// @Success 200 {object} response.Response "Обновлённая марка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Марка не найдена"
// @Failure 409 {object} response.ErrorResponse "Имя уже занято"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /catalog/brands [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.brandupdate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UpdateBrandRequest
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

	brand, err := h.service.RenameBrand(r.Context(), req.OldName, req.NewName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Warn("brand not found", slog.String("name", req.OldName))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("brand not found"))
		case errors.Is(err, catalog.ErrNameTaken):
			log.Warn("brand name already taken", slog.String("name", req.NewName))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("brand name already taken"))
		default:
			log.Error("failed to rename brand", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not rename brand"))
		}
		return
	}

	log.Info("brand renamed", slog.String("name", brand.Name))
	render.JSON(w, r, response.OKWithData(brand))
}
