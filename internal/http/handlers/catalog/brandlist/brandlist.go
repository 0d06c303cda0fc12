// Package brandlist реализует HTTP-обработчик списка и поиска марок.
package brandlist

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

// Handler управляет HTTP-запросами на список марок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога марок.
type Service interface {
	ListBrands(ctx context.Context) ([]*models.Brand, error)
	SearchBrands(ctx context.Context, query string) ([]*models.Brand, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список марок
// @Description Возвращает все марки; с параметром search — поиск по подстроке без учёта регистра.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param search query string false "Подстрока для поиска"
// @Success 200 {object} response.Response "Список марок"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /catalog/brands [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.brandlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var (
		brands []*models.Brand
		err    error
	)
	if query := r.URL.Query().Get("search"); query != "" {
		brands, err = h.service.SearchBrands(r.Context(), query)
	} else {
		brands, err = h.service.ListBrands(r.Context())
	}
	if err != nil {
		log.Error("failed to list brands", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list brands"))
		return
	}

	render.JSON(w, r, response.OKWithData(brands))
}
