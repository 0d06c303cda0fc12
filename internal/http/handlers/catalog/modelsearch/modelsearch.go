// Package modelsearch реализует HTTP-обработчик поиска моделей по всем маркам.
package modelsearch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// Handler управляет HTTP-запросами на поиск моделей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска моделей.
type Service interface {
	SearchModels(ctx context.Context, query string) ([]*models.Model, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск моделей
// @Description Ищет модели по подстроке имени без учёта регистра по всем маркам.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string true "Подстрока для поиска"
// @Success 200 {object} response.Response "Найденные модели"
// @Failure 400 {object} response.ErrorResponse "Пустой запрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /catalog/models/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.modelsearch"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("search")
	if query == "" {
		log.Error("empty search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("search query is required"))
		return
	}

	items, err := h.service.SearchModels(r.Context(), query)
	if err != nil {
		log.Error("failed to search models", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search models"))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
