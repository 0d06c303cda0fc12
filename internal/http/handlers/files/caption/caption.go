// Package caption реализует HTTP-обработчик изменения описания файлов года.
//
// Запись файла создаётся при отсутствии, поэтому описание можно задать
// раньше, чем будут заполнены слоты.
package caption

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на изменение описания.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики описаний.
type Service interface {
	UpdateCaption(ctx context.Context, yearID int, caption string) (*models.File, error)
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
// @Summary Изменить описание файлов года
// @Tags Files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param yearID path int true "Идентификатор года"
// @Param request body models.UpdateCaptionRequest true "Новое описание"
// @Success 200 {object} response.Response "Обновлённая запись файла"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Год не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /files/year/{yearID}/caption [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.files.caption"
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

	var req models.UpdateCaptionRequest
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

	file, err := h.service.UpdateCaption(r.Context(), yearID, req.Caption)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("year not found", slog.Int("year_id", yearID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("year not found"))
			return
		}
		log.Error("failed to update caption", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update caption"))
		return
	}

	log.Info("caption updated", slog.Int("year_id", yearID))
	render.JSON(w, r, response.OKWithData(file))
}
