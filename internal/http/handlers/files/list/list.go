// Package list реализует HTTP-обработчик списка файлов года выпуска.
//
// Премиум-слоты включаются в ответ только когда запрашивающий —
// администратор либо действующий премиум-пользователь.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на список файлов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выдачи файлов.
type Service interface {
	ListByYear(ctx context.Context, yearID int, userID int64) (*models.YearFiles, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Файлы года выпуска
// @Description Возвращает контекст иерархии и файлы с видимыми запрашивающему слотами.
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param yearID path int true "Идентификатор года"
// @Success 200 {object} response.Response "Файлы года"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Год не найден"
// @Router /files/year/{yearID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.files.list"
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

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	files, err := h.service.ListByYear(r.Context(), yearID, user.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("year not found", slog.Int("year_id", yearID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("year not found"))
			return
		}
		log.Error("failed to list files", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list files"))
		return
	}

	render.JSON(w, r, response.OKWithData(files))
}
